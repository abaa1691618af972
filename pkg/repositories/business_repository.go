package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

type BusinessRepository interface {
	Create(ctx context.Context, b *models.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	// GetForUser returns nil when the business does not exist or belongs
	// to someone else.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.Business, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Business, error)
}

type businessRepo struct {
	db DB
}

func NewBusinessRepository(db DB) BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, b *models.Business) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO businesses (id, user_id, name, created_at, updated_at)
        VALUES ($1,$2,$3, NOW(), NOW())
    `, b.ID, b.UserID, b.Name)
	return err
}

func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	return scanBusiness(r.db.QueryRow(ctx, baseSelectBusiness()+" WHERE id=$1", id))
}

func (r *businessRepo) GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.Business, error) {
	return scanBusiness(r.db.QueryRow(ctx, baseSelectBusiness()+" WHERE id=$1 AND user_id=$2", id, userID))
}

func (r *businessRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Business, error) {
	rows, err := r.db.Query(ctx, baseSelectBusiness()+" WHERE user_id=$1 ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func baseSelectBusiness() string {
	return `SELECT id, user_id, name, created_at, updated_at FROM businesses`
}

func scanBusiness(row pgx.Row) (*models.Business, error) {
	var b models.Business
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
