package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

// EntityWithVersion is implemented by models embedding models.Versioned.
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

type GetByIDFunc[T EntityWithVersion] func(
	ctx context.Context,
	id string,
) (T, error)

// DefaultMaxRetries bounds the optimistic-locking loop.
const DefaultMaxRetries = 3

// WithRetry loads the row, applies mutate and writes it back only if
// row_version is unchanged, reloading up to maxRetries times. A missing row
// returns pgx.ErrNoRows and running out of attempts returns
// utils.ErrRowVersionConflict.
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxRetries int,
	id string,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		current, err := getByID(ctx, id)
		if err != nil {
			return err
		}

		var zero T
		if current == zero {
			return pgx.ErrNoRows
		}

		oldVersion := current.GetRowVersion()

		if err := mutate(current); err != nil {
			return err
		}

		tag, err := updateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			current.SetRowVersion(oldVersion + 1)
			return nil
		}
		// lost the race, reload and try again
	}
	return fmt.Errorf("updating %q: %w", id, utils.ErrRowVersionConflict)
}
