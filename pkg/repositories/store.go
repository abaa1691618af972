package repositories

import "context"

// Repos bundles every repository bound to the same DB handle.
type Repos struct {
	Users      UserRepository
	Businesses BusinessRepository
	Properties PropertyRepository
	Units      UnitRepository
	Tenants    TenantRepository
	Rentals    RentalRepository
	Tokens     VerificationTokenRepository
}

// NewRepos binds all repositories to db (a pool or a transaction).
func NewRepos(db DB) Repos {
	return Repos{
		Users:      NewUserRepository(db),
		Businesses: NewBusinessRepository(db),
		Properties: NewPropertyRepository(db),
		Units:      NewUnitRepository(db),
		Tenants:    NewTenantRepository(db),
		Rentals:    NewRentalRepository(db),
		Tokens:     NewVerificationTokenRepository(db),
	}
}

// Store runs fn with repositories bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Store interface {
	WithTx(ctx context.Context, fn func(tx Repos) error) error
}

type pgStore struct {
	db DB
}

func NewStore(db DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) WithTx(ctx context.Context, fn func(tx Repos) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(NewRepos(tx))
	return err
}
