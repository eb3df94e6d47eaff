package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ranki5/ranki5-go/internal/model"
	"github.com/ranki5/ranki5-go/internal/youtube"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

const channelColumns = `id, youtube_id, nom, description, abonnes, vues, videos, image,
	langue_principale, theme_principal, pays, custom_url, youtube_url,
	is_top100, source, soumis_par, verifie, date_ajout, derniere_maj`

func scanChannel(row interface{ Scan(...any) error }) (*model.Channel, error) {
	var ch model.Channel
	err := row.Scan(
		&ch.ID, &ch.YoutubeID, &ch.Nom, &ch.Description, &ch.Abonnes, &ch.Vues, &ch.Videos,
		&ch.Image, &ch.LanguePrincipale, &ch.ThemePrincipal, &ch.Pays, &ch.CustomURL,
		&ch.YoutubeURL, &ch.IsTop100, &ch.Source, &ch.SoumisPar, &ch.Verifie,
		&ch.DateAjout, &ch.DerniereMaj,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// List returns channels matching the query, sorted by subscribers
// descending. Search is a case-insensitive substring match on the name;
// filter and country are pushed into SQL.
func (r *ChannelRepo) List(ctx context.Context, q model.ChannelQuery) ([]model.Channel, error) {
	var (
		conds []string
		args  []any
	)

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf("nom ILIKE $%d", len(args)))
	}
	switch q.Filter {
	case "top100":
		args = append(args, int64(model.Top100SubscriberThreshold))
		conds = append(conds, fmt.Sprintf("(is_top100 OR abonnes > $%d)", len(args)))
	case "community":
		conds = append(conds, "source = 'community'")
	}
	if q.Country != "" && q.Country != "all" {
		args = append(args, q.Country)
		conds = append(conds, fmt.Sprintf("pays = $%d", len(args)))
	}

	query := "SELECT " + channelColumns + " FROM chaines"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY abonnes DESC, id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := make([]model.Channel, 0)
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, *ch)
	}
	return channels, rows.Err()
}

// FindByID returns a single channel.
func (r *ChannelRepo) FindByID(ctx context.Context, id int64) (*model.Channel, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+channelColumns+" FROM chaines WHERE id = $1", id)
	return scanChannel(row)
}

// FindByYoutubeID returns a channel by its external platform identifier.
func (r *ChannelRepo) FindByYoutubeID(ctx context.Context, youtubeID string) (*model.Channel, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+channelColumns+" FROM chaines WHERE youtube_id = $1", youtubeID)
	return scanChannel(row)
}

// Create inserts a community submission. The record starts unverified; an
// admin refresh later resolves placeholder identifiers and real metrics.
func (r *ChannelRepo) Create(ctx context.Context, ch *model.Channel) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chaines (youtube_id, nom, description, abonnes, vues, videos, image,
			langue_principale, pays, custom_url, youtube_url, is_top100, source, soumis_par, verifie, derniere_maj)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`,
		ch.YoutubeID, ch.Nom, ch.Description, ch.Abonnes, ch.Vues, ch.Videos, ch.Image,
		ch.LanguePrincipale, ch.Pays, ch.CustomURL, ch.YoutubeURL,
		ch.IsTop100, ch.Source, ch.SoumisPar, ch.Verifie, ch.DerniereMaj,
	).Scan(&id)
	return id, err
}

// UpdateStats applies freshly fetched platform metrics. The stored
// youtube_id is replaced too, so placeholder identifiers resolve to the
// canonical UC… form, and the channel becomes verified.
func (r *ChannelRepo) UpdateStats(ctx context.Context, id int64, info *youtube.ChannelInfo) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE chaines
		SET youtube_id = $1, nom = $2, abonnes = $3, vues = $4, videos = $5,
		    image = NULLIF($6, ''), pays = COALESCE(NULLIF($7, ''), pays),
		    custom_url = NULLIF($8, ''),
		    is_top100 = (is_top100 OR $3 > $9),
		    verifie = TRUE, derniere_maj = NOW()
		WHERE id = $10`,
		info.ID, info.Title, info.SubscriberCount, info.ViewCount, info.VideoCount,
		info.ThumbnailURL, info.Country, info.CustomURL,
		int64(model.Top100SubscriberThreshold), id,
	)
	return err
}

// ChannelRef is the minimal row a bulk refresh needs.
type ChannelRef struct {
	ID        int64
	YoutubeID string
	Nom       string
}

// AllRefs lists every channel for bulk operations, oldest refresh first.
func (r *ChannelRepo) AllRefs(ctx context.Context) ([]ChannelRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, youtube_id, nom FROM chaines
		ORDER BY derniere_maj ASC NULLS FIRST, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []ChannelRef
	for rows.Next() {
		var ref ChannelRef
		if err := rows.Scan(&ref.ID, &ref.YoutubeID, &ref.Nom); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// UpsertTop100 inserts or updates a channel from the top-100 import. It
// returns true when a new row was created.
func (r *ChannelRepo) UpsertTop100(ctx context.Context, info *youtube.ChannelInfo) (bool, error) {
	var inserted bool
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chaines (youtube_id, nom, description, abonnes, vues, videos, image,
			pays, custom_url, is_top100, source, verifie, derniere_maj)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''),
			TRUE, 'top100', TRUE, NOW())
		ON CONFLICT (youtube_id) DO UPDATE
		SET nom = EXCLUDED.nom, abonnes = EXCLUDED.abonnes, vues = EXCLUDED.vues,
		    videos = EXCLUDED.videos, image = COALESCE(EXCLUDED.image, chaines.image),
		    is_top100 = TRUE, verifie = TRUE, derniere_maj = NOW()
		RETURNING (xmax = 0)`,
		info.ID, info.Title, info.Description, info.SubscriberCount, info.ViewCount,
		info.VideoCount, info.ThumbnailURL, info.Country, info.CustomURL,
	).Scan(&inserted)
	return inserted, err
}

// SnapshotAll appends one statistiques row per channel and returns how many
// were recorded.
func (r *ChannelRepo) SnapshotAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO statistiques (chaine_id, abonnes, vues, videos)
		SELECT id, abonnes, COALESCE(vues, 0), COALESCE(videos, 0) FROM chaines`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GlobalStats aggregates the platform-wide numbers served by action=stats.
func (r *ChannelRepo) GlobalStats(ctx context.Context) (*model.GlobalStats, error) {
	var stats model.GlobalStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_top100 OR abonnes > $1),
			COUNT(*) FILTER (WHERE source = 'community'),
			COALESCE(SUM(abonnes), 0),
			COALESCE(SUM(vues), 0),
			COALESCE(SUM(videos), 0),
			COUNT(*) FILTER (WHERE youtube_id LIKE 'temp_%'),
			COUNT(*) FILTER (WHERE derniere_maj IS NULL)
		FROM chaines`,
		int64(model.Top100SubscriberThreshold),
	).Scan(
		&stats.TotalChannels, &stats.Top100Channels, &stats.CommunityChannels,
		&stats.TotalSubscribers, &stats.TotalViews, &stats.TotalVideos,
		&stats.TempChannels, &stats.ChannelsWithoutStats,
	)
	if err != nil {
		return nil, err
	}

	stats.TopThemes = make([]model.ThemeCount, 0)
	rows, err := r.pool.Query(ctx, `
		SELECT theme_principal, COUNT(*) FROM chaines
		WHERE theme_principal IS NOT NULL
		GROUP BY theme_principal ORDER BY COUNT(*) DESC LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tc model.ThemeCount
		if err := rows.Scan(&tc.Theme, &tc.Count); err != nil {
			return nil, err
		}
		stats.TopThemes = append(stats.TopThemes, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.TopCountries = make([]model.CountryCount, 0)
	countryRows, err := r.pool.Query(ctx, `
		SELECT pays, COUNT(*) FROM chaines
		WHERE pays IS NOT NULL
		GROUP BY pays ORDER BY COUNT(*) DESC LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer countryRows.Close()
	for countryRows.Next() {
		var cc model.CountryCount
		if err := countryRows.Scan(&cc.Pays, &cc.Count); err != nil {
			return nil, err
		}
		stats.TopCountries = append(stats.TopCountries, cc)
	}
	return &stats, countryRows.Err()
}
