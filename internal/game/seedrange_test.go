package game

import (
	"errors"
	"math"
	"testing"
)

func TestNewSeedRange(t *testing.T) {
	tests := []struct {
		name      string
		seed      uint32
		instances uint32
		wantMin   uint32
		wantMax   uint32
		wantErr   error
	}{
		{
			name:      "defaults",
			seed:      0,
			instances: 100,
			wantMin:   0,
			wantMax:   99,
		},
		{
			name:      "single instance",
			seed:      5,
			instances: 1,
			wantMin:   5,
			wantMax:   5,
		},
		{
			name:      "single instance at max seed",
			seed:      math.MaxUint32,
			instances: 1,
			wantMin:   math.MaxUint32,
			wantMax:   math.MaxUint32,
		},
		{
			name:      "range ending exactly at max seed",
			seed:      math.MaxUint32 - 9,
			instances: 10,
			wantMin:   math.MaxUint32 - 9,
			wantMax:   math.MaxUint32,
		},
		{
			name:      "one past max seed",
			seed:      math.MaxUint32 - 9,
			instances: 11,
			wantErr:   ErrSeedRangeOutOfBounds,
		},
		{
			name:      "two instances at max seed",
			seed:      math.MaxUint32,
			instances: 2,
			wantErr:   ErrSeedRangeOutOfBounds,
		},
		{
			name:      "max instances from zero",
			seed:      0,
			instances: math.MaxUint32,
			wantMin:   0,
			wantMax:   math.MaxUint32 - 1,
		},
		{
			name:      "zero instances",
			seed:      3,
			instances: 0,
			wantErr:   ErrNoInstances,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewSeedRange(tt.seed, tt.instances)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("Expected error, got range [%d, %d]", r.Min(), r.Max())
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if r.Min() != tt.wantMin {
				t.Errorf("Expected min %d, got %d", tt.wantMin, r.Min())
			}
			if r.Max() != tt.wantMax {
				t.Errorf("Expected max %d, got %d", tt.wantMax, r.Max())
			}
			if r.Count() != tt.instances {
				t.Errorf("Expected count %d, got %d", tt.instances, r.Count())
			}
		})
	}
}
