package repository

import (
	"testing"
	"time"
)

func TestPluralityWinner_HighestCountWins(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tallies := []ThemeTally{
		{Theme: "gaming", Count: 3, Earliest: base.Add(time.Hour)},
		{Theme: "musique", Count: 5, Earliest: base.Add(2 * time.Hour)},
		{Theme: "tech", Count: 1, Earliest: base},
	}

	if got := PluralityWinner(tallies); got != "musique" {
		t.Errorf("got %q, want musique", got)
	}
}

func TestPluralityWinner_TieBreaksOnEarliestVote(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tallies := []ThemeTally{
		{Theme: "gaming", Count: 4, Earliest: base.Add(time.Minute)},
		{Theme: "musique", Count: 4, Earliest: base},
		{Theme: "sport", Count: 2, Earliest: base.Add(-time.Hour)},
	}

	// musique and gaming are tied on count; musique's first vote is older.
	if got := PluralityWinner(tallies); got != "musique" {
		t.Errorf("got %q, want musique", got)
	}
}

func TestPluralityWinner_ExactTieIsDeterministic(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tallies := []ThemeTally{
		{Theme: "voyage", Count: 2, Earliest: base},
		{Theme: "cuisine", Count: 2, Earliest: base},
	}

	want := PluralityWinner(tallies)
	for i := 0; i < 10; i++ {
		// Reversed input order must not change the outcome.
		reversed := []ThemeTally{tallies[1], tallies[0]}
		if got := PluralityWinner(reversed); got != want {
			t.Fatalf("order-dependent winner: %q vs %q", got, want)
		}
	}
	if want != "cuisine" {
		t.Errorf("got %q, want cuisine (lexicographic fallback)", want)
	}
}

func TestPluralityWinner_Empty(t *testing.T) {
	if got := PluralityWinner(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestPluralityWinner_RevoteShiftsWinner(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Two gaming votes against one musique vote: gaming leads.
	before := []ThemeTally{
		{Theme: "gaming", Count: 2, Earliest: base},
		{Theme: "musique", Count: 1, Earliest: base.Add(time.Minute)},
	}
	if got := PluralityWinner(before); got != "gaming" {
		t.Fatalf("got %q, want gaming", got)
	}

	// One gaming voter changes their vote: the replacement moves the count
	// and restamps the vote, flipping the winner.
	after := []ThemeTally{
		{Theme: "gaming", Count: 1, Earliest: base},
		{Theme: "musique", Count: 2, Earliest: base.Add(time.Minute)},
	}
	if got := PluralityWinner(after); got != "musique" {
		t.Errorf("got %q, want musique", got)
	}
}
