package runner

import (
	"regexp"
	"strconv"
)

// scoreLine matches one score line of the game's diagnostic output. The
// token between "player" and "got" is the name as the game prints it; slots
// are filled by order of appearance, not by matching names back.
var scoreLine = regexp.MustCompile(`player \S+ got score (\d+)`)

// ParseScores extracts up to four scores from the child's diagnostic
// output, in order of appearance. Lines that never show up leave their slot
// at zero, and a captured value too large for uint32 counts as missing.
// Anything past the fourth match is ignored.
func ParseScores(diag []byte) [4]uint32 {
	var points [4]uint32
	for i, m := range scoreLine.FindAllSubmatch(diag, len(points)) {
		if v, err := strconv.ParseUint(string(m[1]), 10, 32); err == nil {
			points[i] = uint32(v)
		}
	}
	return points
}
