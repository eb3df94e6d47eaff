package model

import "testing"

func TestEffectiveTop100(t *testing.T) {
	tests := []struct {
		name     string
		isTop100 bool
		abonnes  int64
		want     bool
	}{
		{"flagged small channel", true, 1_000, true},
		{"unflagged above threshold", false, 15_000_000, true},
		{"unflagged at threshold", false, Top100SubscriberThreshold, false},
		{"unflagged below threshold", false, 9_999_999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Channel{IsTop100: tt.isTop100, Abonnes: tt.abonnes}
			if got := c.EffectiveTop100(); got != tt.want {
				t.Errorf("EffectiveTop100() = %v, want %v", got, tt.want)
			}
		})
	}
}
