package services

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/AbdellahHatouchi/property-management/internal/config"
	"github.com/AbdellahHatouchi/property-management/internal/constants"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
)

// memDB is an in-memory stand-in for the postgres schema. All fake
// repositories share one memDB, so a "transaction" is simply the same state.
type memDB struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*models.User
	businesses map[uuid.UUID]*models.Business
	properties map[uuid.UUID]*models.Property
	units      []*models.Unit
	tenants    map[uuid.UUID]*models.Tenant
	rentals    map[uuid.UUID]*models.Rental
	tokens     map[uuid.UUID]*models.VerificationToken

	listExpiredErr error
}

func newMemDB() *memDB {
	return &memDB{
		users:      map[uuid.UUID]*models.User{},
		businesses: map[uuid.UUID]*models.Business{},
		properties: map[uuid.UUID]*models.Property{},
		tenants:    map[uuid.UUID]*models.Tenant{},
		rentals:    map[uuid.UUID]*models.Rental{},
		tokens:     map[uuid.UUID]*models.VerificationToken{},
	}
}

func (m *memDB) repos() repositories.Repos {
	return repositories.Repos{
		Users:      &fakeUsers{m},
		Businesses: &fakeBusinesses{m},
		Properties: &fakeProperties{m},
		Units:      &fakeUnits{m},
		Tenants:    &fakeTenants{m},
		Rentals:    &fakeRentals{m},
		Tokens:     &fakeTokens{m},
	}
}

// fakeStore runs fn against the shared memDB and restores the state it
// saw at the start when fn fails, like a rolled back transaction.
// beforeTx, when set, runs before that state is captured and stands in for
// a concurrent transaction that committed first.
type fakeStore struct {
	db       *memDB
	calls    int
	beforeTx func()
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(tx repositories.Repos) error) error {
	s.calls++
	if s.beforeTx != nil {
		s.beforeTx()
	}
	snap := s.db.snapshot()
	if err := fn(s.db.repos()); err != nil {
		s.db.restore(snap)
		return err
	}
	return nil
}

type saved[T any] struct {
	ptr *T
	val T
}

func saveMap[T any](m map[uuid.UUID]*T) map[uuid.UUID]saved[T] {
	out := make(map[uuid.UUID]saved[T], len(m))
	for k, v := range m {
		out[k] = saved[T]{ptr: v, val: *v}
	}
	return out
}

func restoreMap[T any](m map[uuid.UUID]*T, s map[uuid.UUID]saved[T]) {
	for k := range m {
		delete(m, k)
	}
	for k, sv := range s {
		*sv.ptr = sv.val
		m[k] = sv.ptr
	}
}

type memSnapshot struct {
	users      map[uuid.UUID]saved[models.User]
	businesses map[uuid.UUID]saved[models.Business]
	properties map[uuid.UUID]saved[models.Property]
	units      []saved[models.Unit]
	tenants    map[uuid.UUID]saved[models.Tenant]
	rentals    map[uuid.UUID]saved[models.Rental]
	tokens     map[uuid.UUID]saved[models.VerificationToken]
}

func (m *memDB) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	units := make([]saved[models.Unit], 0, len(m.units))
	for _, u := range m.units {
		units = append(units, saved[models.Unit]{ptr: u, val: *u})
	}
	return memSnapshot{
		users:      saveMap(m.users),
		businesses: saveMap(m.businesses),
		properties: saveMap(m.properties),
		units:      units,
		tenants:    saveMap(m.tenants),
		rentals:    saveMap(m.rentals),
		tokens:     saveMap(m.tokens),
	}
}

func (m *memDB) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	restoreMap(m.users, s.users)
	restoreMap(m.businesses, s.businesses)
	restoreMap(m.properties, s.properties)
	restoreMap(m.tenants, s.tenants)
	restoreMap(m.rentals, s.rentals)
	restoreMap(m.tokens, s.tokens)
	m.units = m.units[:0]
	for _, sv := range s.units {
		*sv.ptr = sv.val
		m.units = append(m.units, sv.ptr)
	}
}

// ---------------------------------------------------------------------
// seed helpers
// ---------------------------------------------------------------------

func (m *memDB) addUser(name, email string) *models.User {
	u := &models.User{ID: uuid.New(), Name: name, Email: email}
	u.RowVersion = 1
	m.users[u.ID] = u
	return u
}

func (m *memDB) addBusiness(owner *models.User) *models.Business {
	b := &models.Business{ID: uuid.New(), UserID: owner.ID, Name: "Atlas Rentals"}
	m.businesses[b.ID] = b
	return b
}

func (m *memDB) addProperty(b *models.Business, daily, monthly float64, unitAvailability ...bool) *models.Property {
	p := &models.Property{
		ID:                uuid.New(),
		BusinessID:        b.ID,
		Name:              "Residence Anfa",
		Type:              models.PropertyTypeApartment,
		DailyRentalCost:   daily,
		MonthlyRentalCost: monthly,
	}
	for i, avail := range unitAvailability {
		m.units = append(m.units, &models.Unit{
			ID:          uuid.New(),
			PropertyID:  p.ID,
			Number:      "A" + strconv.Itoa(i+1),
			IsAvailable: avail,
		})
		if avail {
			p.IsAvailable = true
		}
	}
	m.properties[p.ID] = p
	return p
}

func (m *memDB) addTenant(b *models.Business, name, email string) *models.Tenant {
	t := &models.Tenant{
		ID:            uuid.New(),
		BusinessID:    b.ID,
		Name:          name,
		Email:         email,
		CINOrPassport: "BK123456",
		PhoneNumber:   "0612345678",
		Address:       "Casablanca",
	}
	t.RowVersion = 1
	m.tenants[t.ID] = t
	return t
}

func (m *memDB) addRental(p *models.Property, t *models.Tenant, unit string, end time.Time, settled bool) *models.Rental {
	r := &models.Rental{
		ID:           uuid.New(),
		BusinessID:   p.BusinessID,
		PropertyID:   p.ID,
		TenantID:     t.ID,
		Unit:         unit,
		RentalNumber: constants.RentalNumberPrefix + strconv.Itoa(constants.RentalNumberBase+len(m.rentals)+1),
		RentalType:   models.RentalTypeDaily,
		RentalCost:   p.DailyRentalCost,
		TotalAmount:  p.DailyRentalCost * 2,
		StartDate:    end.Add(-48 * time.Hour),
		EndDate:      end,
		Settled:      settled,
	}
	if settled {
		paid := end.Add(-24 * time.Hour)
		r.DatePaid = &paid
	}
	m.rentals[r.ID] = r
	return r
}

func (m *memDB) unit(propertyID uuid.UUID, number string) *models.Unit {
	for _, u := range m.units {
		if u.PropertyID == propertyID && u.Number == number {
			return u
		}
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		OrganizationName:        "Rent Master",
		AccessTokenTTL:          time.Hour,
		SweepMaxConcurrentSends: 4,
	}
}

// ---------------------------------------------------------------------
// users
// ---------------------------------------------------------------------

type fakeUsers struct{ *memDB }

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	cp := *u
	cp.RowVersion = 1
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) UpdateIfVersion(ctx context.Context, u *models.User, expected int64) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.users[u.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *u
	cp.RowVersion = expected + 1
	f.users[u.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeUsers) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.User) error) error {
	return repositories.WithRetry(ctx, repositories.DefaultMaxRetries, id.String(),
		func(ctx context.Context, s string) (*models.User, error) {
			return f.GetByID(ctx, uuid.MustParse(s))
		},
		f.UpdateIfVersion,
		mutate,
	)
}

func (f *fakeUsers) MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.EmailVerified = &at
	return nil
}

// ---------------------------------------------------------------------
// businesses
// ---------------------------------------------------------------------

type fakeBusinesses struct{ *memDB }

func (f *fakeBusinesses) Create(ctx context.Context, b *models.Business) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	f.businesses[b.ID] = &cp
	return nil
}

func (f *fakeBusinesses) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.businesses[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBusinesses) GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.Business, error) {
	b, _ := f.GetByID(ctx, id)
	if b == nil || b.UserID != userID {
		return nil, nil
	}
	return b, nil
}

func (f *fakeBusinesses) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Business
	for _, b := range f.businesses {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------
// properties & units
// ---------------------------------------------------------------------

type fakeProperties struct{ *memDB }

func (f *fakeProperties) Create(ctx context.Context, p *models.Property) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	cp.Units = nil
	f.properties[p.ID] = &cp
	return nil
}

func (f *fakeProperties) GetForBusiness(ctx context.Context, businessID, id uuid.UUID) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok || p.BusinessID != businessID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProperties) ListByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Property
	for _, p := range f.properties {
		if p.BusinessID == businessID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return page(out, limit, offset), nil
}

func (f *fakeProperties) Update(ctx context.Context, p *models.Property) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.properties[p.ID]
	if !ok || cur.BusinessID != p.BusinessID {
		return pgx.ErrNoRows
	}
	cur.Name, cur.Type, cur.Address = p.Name, p.Type, p.Address
	cur.DailyRentalCost, cur.MonthlyRentalCost = p.DailyRentalCost, p.MonthlyRentalCost
	return nil
}

func (f *fakeProperties) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.properties[id]; ok {
		p.IsAvailable = available
	}
	return nil
}

func (f *fakeProperties) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok || p.BusinessID != businessID {
		return pgx.ErrNoRows
	}
	delete(f.properties, id)
	return nil
}

type fakeUnits struct{ *memDB }

func (f *fakeUnits) CreateMany(ctx context.Context, units []*models.Unit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range units {
		if f.unit(u.PropertyID, u.Number) != nil {
			return &pgconn.PgError{Code: "23505"}
		}
		cp := *u
		f.units = append(f.units, &cp)
	}
	return nil
}

func (f *fakeUnits) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Unit
	for _, u := range f.units {
		if u.PropertyID == propertyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUnits) GetByNumber(ctx context.Context, propertyID uuid.UUID, number string) (*models.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u := f.unit(propertyID, number); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUnits) SetAvailability(ctx context.Context, propertyID uuid.UUID, number string, available bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.unit(propertyID, number)
	if u == nil || u.IsAvailable == available {
		return 0, nil
	}
	u.IsAvailable = available
	return 1, nil
}

func (f *fakeUnits) CountAvailable(ctx context.Context, propertyID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, u := range f.units {
		if u.PropertyID == propertyID && u.IsAvailable {
			n++
		}
	}
	return n, nil
}

func (f *fakeUnits) DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.units[:0]
	for _, u := range f.units {
		if u.PropertyID != propertyID {
			kept = append(kept, u)
		}
	}
	f.units = kept
	return nil
}

// ---------------------------------------------------------------------
// tenants
// ---------------------------------------------------------------------

type fakeTenants struct{ *memDB }

func (f *fakeTenants) Create(ctx context.Context, t *models.Tenant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	cp.RowVersion = 1
	f.tenants[t.ID] = &cp
	return nil
}

func (f *fakeTenants) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tenants[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTenants) GetForBusiness(ctx context.Context, businessID, id uuid.UUID) (*models.Tenant, error) {
	t, _ := f.GetByID(ctx, id)
	if t == nil || t.BusinessID != businessID {
		return nil, nil
	}
	return t, nil
}

func (f *fakeTenants) ListByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Tenant
	for _, t := range f.tenants {
		if t.BusinessID == businessID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return page(out, limit, offset), nil
}

func (f *fakeTenants) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.tenants[t.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *t
	cp.RowVersion = expected + 1
	f.tenants[t.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeTenants) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	return repositories.WithRetry(ctx, repositories.DefaultMaxRetries, id.String(),
		func(ctx context.Context, s string) (*models.Tenant, error) {
			return f.GetByID(ctx, uuid.MustParse(s))
		},
		f.UpdateIfVersion,
		mutate,
	)
}

func (f *fakeTenants) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tenants[id]
	if !ok || t.BusinessID != businessID {
		return pgx.ErrNoRows
	}
	delete(f.tenants, id)
	return nil
}

// ---------------------------------------------------------------------
// rentals
// ---------------------------------------------------------------------

type fakeRentals struct{ *memDB }

func (f *fakeRentals) Create(ctx context.Context, r *models.Rental) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rentals {
		if existing.RentalNumber == r.RentalNumber {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	f.rentals[r.ID] = &cp
	return nil
}

func (f *fakeRentals) GetForBusiness(ctx context.Context, businessID, id uuid.UUID) (*models.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rentals[id]
	if !ok || r.BusinessID != businessID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRentals) filter(keep func(*models.Rental) bool) []*models.Rental {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Rental
	for _, r := range f.rentals {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RentalNumber < out[j].RentalNumber })
	return out
}

func (f *fakeRentals) ListByBusinessID(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.Rental, error) {
	out := f.filter(func(r *models.Rental) bool { return r.BusinessID == businessID })
	return page(out, limit, offset), nil
}

func (f *fakeRentals) ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Rental, error) {
	return f.filter(func(r *models.Rental) bool { return r.TenantID == tenantID }), nil
}

func (f *fakeRentals) ListExpiredUnsettled(ctx context.Context, businessID uuid.UUID, now time.Time) ([]*models.Rental, error) {
	return f.filter(func(r *models.Rental) bool {
		return r.BusinessID == businessID && r.IsExpired(now) && !r.Settled
	}), nil
}

func (f *fakeRentals) ListExpired(ctx context.Context, now time.Time) ([]*models.ExpiredRental, error) {
	if f.listExpiredErr != nil {
		return nil, f.listExpiredErr
	}
	rentals := f.filter(func(r *models.Rental) bool { return r.IsExpired(now) })

	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.ExpiredRental, 0, len(rentals))
	for _, r := range rentals {
		er := &models.ExpiredRental{Rental: *r}
		if t, ok := f.tenants[r.TenantID]; ok {
			er.TenantName, er.TenantEmail = t.Name, t.Email
		}
		if b, ok := f.businesses[r.BusinessID]; ok {
			if u, ok := f.users[b.UserID]; ok {
				er.OwnerName, er.OwnerEmail = u.Name, u.Email
			}
		}
		out = append(out, er)
	}
	return out, nil
}

func (f *fakeRentals) HasActiveRental(ctx context.Context, propertyID uuid.UUID, unit string, now time.Time) (bool, error) {
	active := f.filter(func(r *models.Rental) bool {
		return r.PropertyID == propertyID && r.Unit == unit && !r.IsExpired(now)
	})
	return len(active) > 0, nil
}

func (f *fakeRentals) Settle(ctx context.Context, businessID, id uuid.UUID, paidAt time.Time) (*models.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rentals[id]
	if !ok || r.BusinessID != businessID {
		return nil, nil
	}
	r.Settled = true
	r.DatePaid = &paidAt
	cp := *r
	return &cp, nil
}

func (f *fakeRentals) Delete(ctx context.Context, businessID, id uuid.UUID) (*models.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rentals[id]
	if !ok || r.BusinessID != businessID {
		return nil, nil
	}
	delete(f.rentals, id)
	return r, nil
}

func (f *fakeRentals) DeleteByTenantID(ctx context.Context, tenantID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.rentals {
		if r.TenantID == tenantID {
			delete(f.rentals, id)
		}
	}
	return nil
}

func (f *fakeRentals) DeleteByPropertyID(ctx context.Context, propertyID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.rentals {
		if r.PropertyID == propertyID {
			delete(f.rentals, id)
		}
	}
	return nil
}

func (f *fakeRentals) MaxRentalSequence(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var max int64
	for _, r := range f.rentals {
		n, err := strconv.ParseInt(strings.TrimPrefix(r.RentalNumber, constants.RentalNumberPrefix), 10, 64)
		if err != nil || !strings.HasPrefix(r.RentalNumber, constants.RentalNumberPrefix) {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

// ---------------------------------------------------------------------
// verification tokens
// ---------------------------------------------------------------------

type fakeTokens struct{ *memDB }

func (f *fakeTokens) Create(ctx context.Context, t *models.VerificationToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	cp.CreatedAt = time.Now()
	f.tokens[t.ID] = &cp
	return nil
}

func (f *fakeTokens) GetByEmail(ctx context.Context, email string) (*models.VerificationToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.Email == email {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTokens) Get(ctx context.Context, email, otp string, typ models.TokenType) (*models.VerificationToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.Email == email && t.OTPToken == otp && t.Type == typ {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTokens) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, id)
	return nil
}

func (f *fakeTokens) CleanupExpired(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for id, t := range f.tokens {
		if !t.Expires.After(now) {
			delete(f.tokens, id)
		}
	}
	return nil
}

// ---------------------------------------------------------------------
// mailer
// ---------------------------------------------------------------------

type fakeMailer struct {
	mu     sync.Mutex
	sent   []EmailMessage
	failTo map[string]bool
}

func (m *fakeMailer) Send(ctx context.Context, msg EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[msg.ToEmail] {
		return errors.New("smtp rejected")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, msg := range m.sent {
		out = append(out, msg.ToEmail)
	}
	sort.Strings(out)
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
