package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetForBusiness(ctx context.Context, businessID, id uuid.UUID) (*models.Tenant, error)
	ListByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.Tenant, error)

	UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
}

type tenantRepo struct {
	*BaseVersionedRepo[*models.Tenant]
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	r := &tenantRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectTenant()+" WHERE id=$1", scanTenant)
	return r
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tenants (
            id, business_id, name, email, cin_or_passport, is_tourist,
            date_of_birth, phone_number, address,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW(), 1)
    `,
		t.ID,
		t.BusinessID,
		t.Name,
		t.Email,
		t.CINOrPassport,
		t.IsTourist,
		t.DateOfBirth,
		t.PhoneNumber,
		t.Address,
	)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *tenantRepo) GetForBusiness(ctx context.Context, businessID, id uuid.UUID) (*models.Tenant, error) {
	return scanTenant(r.db.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1 AND business_id=$2", id, businessID))
}

func (r *tenantRepo) ListByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx,
		baseSelectTenant()+" WHERE business_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		businessID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE tenants SET
            name=$1, email=$2, cin_or_passport=$3, is_tourist=$4,
            date_of_birth=$5, phone_number=$6, address=$7,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$8 AND row_version=$9
    `,
		t.Name, t.Email, t.CINOrPassport, t.IsTourist,
		t.DateOfBirth, t.PhoneNumber, t.Address,
		t.ID, expected,
	)
}

func (r *tenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *tenantRepo) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id=$1 AND business_id=$2`, id, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectTenant() string {
	return `
        SELECT
            id, business_id, name, email, cin_or_passport, is_tourist,
            date_of_birth, phone_number, address,
            created_at, updated_at, row_version
        FROM tenants
    `
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(
		&t.ID,
		&t.BusinessID,
		&t.Name,
		&t.Email,
		&t.CINOrPassport,
		&t.IsTourist,
		&t.DateOfBirth,
		&t.PhoneNumber,
		&t.Address,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
