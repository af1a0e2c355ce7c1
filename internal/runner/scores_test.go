package runner

import "testing"

func TestParseScores(t *testing.T) {
	tests := []struct {
		name string
		diag string
		want [4]uint32
	}{
		{
			name: "four players",
			diag: "player Alice got score 10\nplayer Bob got score 20\nplayer Carol got score 20\nplayer Dave got score 5\n",
			want: [4]uint32{10, 20, 20, 5},
		},
		{
			name: "empty output",
			diag: "",
			want: [4]uint32{0, 0, 0, 0},
		},
		{
			name: "missing trailing players stay zero",
			diag: "player Alice got score 7\nplayer Bob got score 3\n",
			want: [4]uint32{7, 3, 0, 0},
		},
		{
			name: "score lines interleaved with debug noise",
			diag: "turn 1: drawing cards\nplayer Alice got score 1\nboard dump: ####\nplayer Bob got score 2\nplayer Carol got score 3\nwarning: slow AI\nplayer Dave got score 4\n",
			want: [4]uint32{1, 2, 3, 4},
		},
		{
			name: "matches past the fourth ignored",
			diag: "player a got score 1\nplayer b got score 2\nplayer c got score 3\nplayer d got score 4\nplayer e got score 5\n",
			want: [4]uint32{1, 2, 3, 4},
		},
		{
			name: "value above uint32 counts as missing",
			diag: "player a got score 99999999999\nplayer b got score 8\n",
			want: [4]uint32{0, 8, 0, 0},
		},
		{
			name: "value at uint32 max kept",
			diag: "player a got score 4294967295\n",
			want: [4]uint32{4294967295, 0, 0, 0},
		},
		{
			name: "several matches on one line",
			diag: "player a got score 1 player b got score 2\n",
			want: [4]uint32{1, 2, 0, 0},
		},
		{
			name: "name with punctuation",
			diag: "player ??!x got score 7\n",
			want: [4]uint32{7, 0, 0, 0},
		},
		{
			name: "line without a name does not match",
			diag: "player got score 7\n",
			want: [4]uint32{0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseScores([]byte(tt.diag)); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
