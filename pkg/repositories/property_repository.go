package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	// GetForBusiness returns nil,nil when the property is missing or
	// belongs to another business. Units are not loaded.
	GetForBusiness(ctx context.Context, businessID, id uuid.UUID) (*models.Property, error)
	ListByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, business_id, name, type, daily_rental_cost, monthly_rental_cost,
            address, is_available, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW())
    `,
		p.ID,
		p.BusinessID,
		p.Name,
		p.Type,
		p.DailyRentalCost,
		p.MonthlyRentalCost,
		p.Address,
		p.IsAvailable,
	)
	return err
}

func (r *propertyRepo) GetForBusiness(ctx context.Context, businessID, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1 AND business_id=$2", id, businessID)
	return scanProperty(row)
}

func (r *propertyRepo) ListByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx,
		baseSelectProperty()+" WHERE business_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		businessID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE properties SET
            name=$1, type=$2, daily_rental_cost=$3, monthly_rental_cost=$4,
            address=$5, updated_at=NOW()
        WHERE id=$6 AND business_id=$7
    `,
		p.Name, p.Type, p.DailyRentalCost, p.MonthlyRentalCost, p.Address,
		p.ID, p.BusinessID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE properties SET is_available=$1, updated_at=NOW() WHERE id=$2`,
		available, id,
	)
	return err
}

func (r *propertyRepo) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1 AND business_id=$2`, id, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, business_id, name, type,
            daily_rental_cost, monthly_rental_cost,
            address, is_available,
            created_at, updated_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&p.Name,
		&p.Type,
		&p.DailyRentalCost,
		&p.MonthlyRentalCost,
		&p.Address,
		&p.IsAvailable,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
