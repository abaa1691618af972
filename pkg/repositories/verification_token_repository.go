package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

type VerificationTokenRepository interface {
	Create(ctx context.Context, t *models.VerificationToken) error
	GetByEmail(ctx context.Context, email string) (*models.VerificationToken, error)
	Get(ctx context.Context, email, otp string, typ models.TokenType) (*models.VerificationToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CleanupExpired(ctx context.Context) error
}

type verificationTokenRepo struct {
	db DB
}

func NewVerificationTokenRepository(db DB) VerificationTokenRepository {
	return &verificationTokenRepo{db: db}
}

func (r *verificationTokenRepo) Create(ctx context.Context, t *models.VerificationToken) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO verification_tokens (id, email, otp_token, type, expires, created_at)
        VALUES ($1,$2,$3,$4,$5, NOW())
    `, t.ID, t.Email, t.OTPToken, t.Type, t.Expires)
	return err
}

func (r *verificationTokenRepo) GetByEmail(ctx context.Context, email string) (*models.VerificationToken, error) {
	row := r.db.QueryRow(ctx, baseSelectToken()+" WHERE email=$1 ORDER BY created_at DESC LIMIT 1", email)
	return scanToken(row)
}

func (r *verificationTokenRepo) Get(ctx context.Context, email, otp string, typ models.TokenType) (*models.VerificationToken, error) {
	row := r.db.QueryRow(ctx, baseSelectToken()+" WHERE email=$1 AND otp_token=$2 AND type=$3", email, otp, typ)
	return scanToken(row)
}

func (r *verificationTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE id=$1`, id)
	return err
}

func (r *verificationTokenRepo) CleanupExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE expires < NOW()`)
	return err
}

func baseSelectToken() string {
	return `SELECT id, email, otp_token, type, expires, created_at FROM verification_tokens`
}

func scanToken(row pgx.Row) (*models.VerificationToken, error) {
	var t models.VerificationToken
	err := row.Scan(&t.ID, &t.Email, &t.OTPToken, &t.Type, &t.Expires, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
