package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateIfVersion(ctx context.Context, u *models.User, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.User) error) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error
}

type userRepo struct {
	*BaseVersionedRepo[*models.User]
	db DB
}

func NewUserRepository(db DB) UserRepository {
	r := &userRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectUser()+" WHERE id=$1", scanUser)
	return r
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (
            id, name, email, password_hash, phone_number, show_api_doc,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW(), 1)
    `,
		u.ID, u.Name, u.Email, u.PasswordHash, u.PhoneNumber, u.ShowAPIDoc,
	)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser()+" WHERE lower(email)=lower($1)", email)
	return scanUser(row)
}

func (r *userRepo) UpdateIfVersion(ctx context.Context, u *models.User, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE users SET
            name=$1, email=$2, phone_number=$3, show_api_doc=$4,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$5 AND row_version=$6
    `,
		u.Name, u.Email, u.PhoneNumber, u.ShowAPIDoc, u.ID, expected,
	)
}

func (r *userRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.User) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *userRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE users SET email_verified=$1, updated_at=NOW(), row_version=row_version+1
        WHERE id=$2
    `, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectUser() string {
	return `
        SELECT
            id, name, email, password_hash, phone_number,
            email_verified, show_api_doc,
            created_at, updated_at, row_version
        FROM users
    `
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.PhoneNumber,
		&u.EmailVerified,
		&u.ShowAPIDoc,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
