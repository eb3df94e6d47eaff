package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ranki5/ranki5-go/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, nom_utilisateur, email, mot_de_passe, role, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsername returns a single user; pgx.ErrNoRows when absent.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM utilisateurs WHERE nom_utilisateur = $1", username)
	return scanUser(row)
}

// FindByEmail returns a single user; pgx.ErrNoRows when absent.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM utilisateurs WHERE email = $1", email)
	return scanUser(row)
}

// FindByID returns a single user; pgx.ErrNoRows when absent.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM utilisateurs WHERE id = $1", id)
	return scanUser(row)
}

// Create inserts a new account with the already-hashed password and returns
// the stored row.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO utilisateurs (nom_utilisateur, email, mot_de_passe, role)
		VALUES ($1, NULLIF($2, ''), $3, 'user')
		RETURNING `+userColumns,
		username, email, passwordHash)
	return scanUser(row)
}
