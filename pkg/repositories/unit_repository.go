package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

type UnitRepository interface {
	CreateMany(ctx context.Context, units []*models.Unit) error
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Unit, error)
	GetByNumber(ctx context.Context, propertyID uuid.UUID, number string) (*models.Unit, error)

	// SetAvailability flips the unit with the given number and reports how
	// many rows changed state. A unit already in the target state is not
	// counted.
	SetAvailability(ctx context.Context, propertyID uuid.UUID, number string, available bool) (int64, error)
	CountAvailable(ctx context.Context, propertyID uuid.UUID) (int, error)
	DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error
}

type unitRepo struct {
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) CreateMany(ctx context.Context, units []*models.Unit) error {
	if len(units) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, u := range units {
		batch.Queue(`
            INSERT INTO units (id, property_id, number, is_available, created_at)
            VALUES ($1,$2,$3,$4, NOW())
        `, u.ID, u.PropertyID, u.Number, u.IsAvailable)
	}

	// Batches need a pgx connection; fall back to sequential inserts for
	// handles that cannot send them.
	if sender, ok := r.db.(interface {
		SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
	}); ok {
		br := sender.SendBatch(ctx, batch)
		for range units {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return err
			}
		}
		return br.Close()
	}

	for _, u := range units {
		if _, err := r.db.Exec(ctx, `
            INSERT INTO units (id, property_id, number, is_available, created_at)
            VALUES ($1,$2,$3,$4, NOW())
        `, u.ID, u.PropertyID, u.Number, u.IsAvailable); err != nil {
			return err
		}
	}
	return nil
}

func (r *unitRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" WHERE property_id=$1 ORDER BY number", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *unitRepo) GetByNumber(ctx context.Context, propertyID uuid.UUID, number string) (*models.Unit, error) {
	return scanUnit(r.db.QueryRow(ctx, baseSelectUnit()+" WHERE property_id=$1 AND number=$2", propertyID, number))
}

func (r *unitRepo) SetAvailability(ctx context.Context, propertyID uuid.UUID, number string, available bool) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE units SET is_available=$1 WHERE property_id=$2 AND number=$3 AND is_available<>$1`,
		available, propertyID, number,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *unitRepo) CountAvailable(ctx context.Context, propertyID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM units WHERE property_id=$1 AND is_available`,
		propertyID,
	).Scan(&n)
	return n, err
}

func (r *unitRepo) DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM units WHERE property_id=$1`, propertyID)
	return err
}

func baseSelectUnit() string {
	return `SELECT id, property_id, number, is_available, created_at FROM units`
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(&u.ID, &u.PropertyID, &u.Number, &u.IsAvailable, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
