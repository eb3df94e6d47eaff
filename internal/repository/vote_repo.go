package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// ValidThemes is the fixed category set channels can be voted into.
var ValidThemes = map[string]bool{
	"gaming":         true,
	"musique":        true,
	"education":      true,
	"divertissement": true,
	"tech":           true,
	"cuisine":        true,
	"sport":          true,
	"beaute":         true,
	"voyage":         true,
}

// ThemeTally is one theme's aggregate over a channel's votes.
type ThemeTally struct {
	Theme    string
	Count    int
	Earliest time.Time
}

// PluralityWinner picks the channel's displayed theme from its vote
// tallies: highest count wins; among tied counts the theme whose earliest
// vote is oldest wins; an exact tie falls back to the lexicographically
// smallest theme so the result stays deterministic. Empty tallies yield "".
func PluralityWinner(tallies []ThemeTally) string {
	var winner ThemeTally
	for _, t := range tallies {
		switch {
		case winner.Theme == "",
			t.Count > winner.Count,
			t.Count == winner.Count && t.Earliest.Before(winner.Earliest),
			t.Count == winner.Count && t.Earliest.Equal(winner.Earliest) && t.Theme < winner.Theme:
			winner = t
		}
	}
	return winner.Theme
}

// SubmitVote records or replaces the user's theme vote for a channel, then
// recomputes the channel's displayed theme as the plurality winner. Both
// steps run in one transaction.
func (r *VoteRepo) SubmitVote(ctx context.Context, chaineID, userID int64, theme string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO votes_themes (chaine_id, utilisateur_id, theme)
		VALUES ($1, $2, $3)
		ON CONFLICT (chaine_id, utilisateur_id) DO UPDATE
		SET theme = EXCLUDED.theme, created_at = NOW()`,
		chaineID, userID, theme)
	if err != nil {
		return err
	}

	rows, err := tx.Query(ctx, `
		SELECT theme, COUNT(*), MIN(created_at) FROM votes_themes
		WHERE chaine_id = $1
		GROUP BY theme`,
		chaineID)
	if err != nil {
		return err
	}
	var tallies []ThemeTally
	for rows.Next() {
		var t ThemeTally
		if err := rows.Scan(&t.Theme, &t.Count, &t.Earliest); err != nil {
			rows.Close()
			return err
		}
		tallies = append(tallies, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	winner := PluralityWinner(tallies)
	_, err = tx.Exec(ctx,
		`UPDATE chaines SET theme_principal = $1 WHERE id = $2`, winner, chaineID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Tally returns the per-theme vote counts for a channel.
func (r *VoteRepo) Tally(ctx context.Context, chaineID int64) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT theme, COUNT(*) FROM votes_themes
		WHERE chaine_id = $1
		GROUP BY theme`,
		chaineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tally := make(map[string]int)
	for rows.Next() {
		var theme string
		var count int
		if err := rows.Scan(&theme, &count); err != nil {
			return nil, err
		}
		tally[theme] = count
	}
	return tally, rows.Err()
}

// UserVote returns the user's current vote for a channel, or nil.
func (r *VoteRepo) UserVote(ctx context.Context, chaineID, userID int64) (*string, error) {
	var theme string
	err := r.pool.QueryRow(ctx, `
		SELECT theme FROM votes_themes
		WHERE chaine_id = $1 AND utilisateur_id = $2`,
		chaineID, userID).Scan(&theme)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &theme, nil
}
