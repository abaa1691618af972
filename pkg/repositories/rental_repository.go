package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

type RentalRepository interface {
	Create(ctx context.Context, r *models.Rental) error
	GetForBusiness(ctx context.Context, businessID, id uuid.UUID) (*models.Rental, error)
	ListByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.Rental, error)
	ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Rental, error)

	// ListExpiredUnsettled returns the business's rentals with end_date <= now
	// that are still unpaid.
	ListExpiredUnsettled(ctx context.Context, businessID uuid.UUID, now time.Time) ([]*models.Rental, error)
	// ListExpired returns every rental with end_date <= now across all
	// businesses, joined with the tenant and owner contacts.
	ListExpired(ctx context.Context, now time.Time) ([]*models.ExpiredRental, error)
	// HasActiveRental reports whether a rental with end_date > now still
	// holds the unit.
	HasActiveRental(ctx context.Context, propertyID uuid.UUID, unit string, now time.Time) (bool, error)

	// Settle and Delete return nil,nil when no row matched.
	Settle(ctx context.Context, businessID, id uuid.UUID, paidAt time.Time) (*models.Rental, error)
	Delete(ctx context.Context, businessID, id uuid.UUID) (*models.Rental, error)
	DeleteByTenantID(ctx context.Context, tenantID uuid.UUID) error
	DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error

	// MaxRentalSequence returns the highest N among RNTL_<N> numbers, 0 if none.
	MaxRentalSequence(ctx context.Context) (int64, error)
}

type rentalRepo struct {
	db DB
}

func NewRentalRepository(db DB) RentalRepository {
	return &rentalRepo{db: db}
}

const rentalColumns = `
    id, business_id, property_id, tenant_id, unit, rental_number, rental_type,
    rental_cost, total_amount, start_date, end_date, settled, date_paid,
    created_at, updated_at
`

func (r *rentalRepo) Create(ctx context.Context, rental *models.Rental) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO rentals (
            id, business_id, property_id, tenant_id, unit, rental_number, rental_type,
            rental_cost, total_amount, start_date, end_date, settled,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, FALSE, NOW(), NOW())
        RETURNING created_at, updated_at
    `,
		rental.ID,
		rental.BusinessID,
		rental.PropertyID,
		rental.TenantID,
		rental.Unit,
		rental.RentalNumber,
		rental.RentalType,
		rental.RentalCost,
		rental.TotalAmount,
		rental.StartDate,
		rental.EndDate,
	)
	return row.Scan(&rental.CreatedAt, &rental.UpdatedAt)
}

func (r *rentalRepo) GetForBusiness(ctx context.Context, businessID, id uuid.UUID) (*models.Rental, error) {
	return scanRental(r.db.QueryRow(ctx,
		"SELECT "+rentalColumns+" FROM rentals WHERE id=$1 AND business_id=$2", id, businessID,
	))
}

func (r *rentalRepo) ListByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.Rental, error) {
	return r.list(ctx,
		"SELECT "+rentalColumns+" FROM rentals WHERE business_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		businessID, limit, offset,
	)
}

func (r *rentalRepo) ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Rental, error) {
	return r.list(ctx, "SELECT "+rentalColumns+" FROM rentals WHERE tenant_id=$1", tenantID)
}

func (r *rentalRepo) ListExpiredUnsettled(ctx context.Context, businessID uuid.UUID, now time.Time) ([]*models.Rental, error) {
	return r.list(ctx,
		"SELECT "+rentalColumns+" FROM rentals WHERE business_id=$1 AND end_date <= $2 AND NOT settled ORDER BY end_date",
		businessID, now,
	)
}

func (r *rentalRepo) ListExpired(ctx context.Context, now time.Time) ([]*models.ExpiredRental, error) {
	rows, err := r.db.Query(ctx, `
        SELECT
            r.id, r.business_id, r.property_id, r.tenant_id, r.unit, r.rental_number, r.rental_type,
            r.rental_cost, r.total_amount, r.start_date, r.end_date, r.settled, r.date_paid,
            r.created_at, r.updated_at,
            t.name, t.email, u.name, u.email
        FROM rentals r
        JOIN tenants t ON t.id = r.tenant_id
        JOIN businesses b ON b.id = r.business_id
        JOIN users u ON u.id = b.user_id
        WHERE r.end_date <= $1
        ORDER BY r.end_date
    `, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ExpiredRental
	for rows.Next() {
		var e models.ExpiredRental
		if err := rows.Scan(
			&e.ID, &e.BusinessID, &e.PropertyID, &e.TenantID, &e.Unit, &e.RentalNumber, &e.RentalType,
			&e.RentalCost, &e.TotalAmount, &e.StartDate, &e.EndDate, &e.Settled, &e.DatePaid,
			&e.CreatedAt, &e.UpdatedAt,
			&e.TenantName, &e.TenantEmail, &e.OwnerName, &e.OwnerEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *rentalRepo) HasActiveRental(ctx context.Context, propertyID uuid.UUID, unit string, now time.Time) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM rentals
            WHERE property_id=$1 AND unit=$2 AND end_date > $3
        )
    `, propertyID, unit, now).Scan(&active)
	return active, err
}

func (r *rentalRepo) Settle(ctx context.Context, businessID, id uuid.UUID, paidAt time.Time) (*models.Rental, error) {
	return scanRental(r.db.QueryRow(ctx, `
        UPDATE rentals SET settled=TRUE, date_paid=$1, updated_at=NOW()
        WHERE id=$2 AND business_id=$3
        RETURNING `+rentalColumns,
		paidAt, id, businessID,
	))
}

func (r *rentalRepo) Delete(ctx context.Context, businessID, id uuid.UUID) (*models.Rental, error) {
	return scanRental(r.db.QueryRow(ctx,
		"DELETE FROM rentals WHERE id=$1 AND business_id=$2 RETURNING "+rentalColumns,
		id, businessID,
	))
}

func (r *rentalRepo) DeleteByTenantID(ctx context.Context, tenantID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rentals WHERE tenant_id=$1`, tenantID)
	return err
}

func (r *rentalRepo) DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rentals WHERE property_id=$1`, propertyID)
	return err
}

func (r *rentalRepo) MaxRentalSequence(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(MAX(CAST(substring(rental_number FROM 6) AS BIGINT)), 0)
        FROM rentals
        WHERE rental_number ~ '^RNTL_[0-9]+$'
    `).Scan(&n)
	return n, err
}

func (r *rentalRepo) list(ctx context.Context, sql string, args ...any) ([]*models.Rental, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rental)
	}
	return out, rows.Err()
}

func scanRental(row pgx.Row) (*models.Rental, error) {
	var r models.Rental
	err := row.Scan(
		&r.ID,
		&r.BusinessID,
		&r.PropertyID,
		&r.TenantID,
		&r.Unit,
		&r.RentalNumber,
		&r.RentalType,
		&r.RentalCost,
		&r.TotalAmount,
		&r.StartDate,
		&r.EndDate,
		&r.Settled,
		&r.DatePaid,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}
