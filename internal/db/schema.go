package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Table names carry over from the original MySQL store so historical dumps
// stay importable.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS utilisateurs (
		id               BIGSERIAL PRIMARY KEY,
		nom_utilisateur  VARCHAR(64) NOT NULL UNIQUE,
		email            VARCHAR(255),
		mot_de_passe     VARCHAR(128) NOT NULL,
		role             VARCHAR(16) NOT NULL DEFAULT 'user',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS chaines (
		id                BIGSERIAL PRIMARY KEY,
		youtube_id        VARCHAR(64) NOT NULL UNIQUE,
		nom               VARCHAR(255) NOT NULL,
		description       TEXT,
		abonnes           BIGINT NOT NULL DEFAULT 0 CHECK (abonnes >= 0),
		vues              BIGINT CHECK (vues >= 0),
		videos            BIGINT CHECK (videos >= 0),
		image             TEXT,
		langue_principale VARCHAR(8),
		theme_principal   VARCHAR(32),
		pays              VARCHAR(8),
		custom_url        VARCHAR(255),
		youtube_url       TEXT,
		is_top100         BOOLEAN NOT NULL DEFAULT FALSE,
		source            VARCHAR(16) NOT NULL DEFAULT 'community',
		soumis_par        BIGINT REFERENCES utilisateurs(id),
		verifie           BOOLEAN NOT NULL DEFAULT FALSE,
		date_ajout        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		derniere_maj      TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chaines_abonnes ON chaines (abonnes DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_chaines_pays ON chaines (pays)`,
	`CREATE TABLE IF NOT EXISTS votes_themes (
		id             BIGSERIAL PRIMARY KEY,
		chaine_id      BIGINT NOT NULL REFERENCES chaines(id) ON DELETE CASCADE,
		utilisateur_id BIGINT NOT NULL REFERENCES utilisateurs(id) ON DELETE CASCADE,
		theme          VARCHAR(32) NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (chaine_id, utilisateur_id)
	)`,
	`CREATE TABLE IF NOT EXISTS statistiques (
		id            BIGSERIAL PRIMARY KEY,
		chaine_id     BIGINT NOT NULL REFERENCES chaines(id) ON DELETE CASCADE,
		abonnes       BIGINT NOT NULL DEFAULT 0,
		vues          BIGINT NOT NULL DEFAULT 0,
		videos        BIGINT NOT NULL DEFAULT 0,
		date_collecte TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_statistiques_chaine ON statistiques (chaine_id, date_collecte DESC)`,
}

// EnsureSchema creates the Ranki5 tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
