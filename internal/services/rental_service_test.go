package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdellahHatouchi/property-management/internal/dtos"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type rentalFixture struct {
	db       *memDB
	store    *fakeStore
	svc      *RentalService
	owner    *models.User
	business *models.Business
	property *models.Property
	tenant   *models.Tenant
}

func newRentalFixture(units ...bool) *rentalFixture {
	db := newMemDB()
	owner := db.addUser("Owner", "owner@example.com")
	b := db.addBusiness(owner)
	p := db.addProperty(b, 200, 6000, units...)
	tenant := db.addTenant(b, "Youssef", "youssef@example.com")
	store := &fakeStore{db: db}
	return &rentalFixture{
		db:       db,
		store:    store,
		svc:      NewRentalService(db.repos(), store, NewAvailabilityService()),
		owner:    owner,
		business: b,
		property: p,
		tenant:   tenant,
	}
}

func (f *rentalFixture) request(unit string, typ models.RentalType, from, to string) dtos.CreateRentalRequest {
	fromT, _ := models.ParseDate(from)
	toT, _ := models.ParseDate(to)
	return dtos.CreateRentalRequest{
		PropertyID:      f.property.ID.String(),
		Unit:            unit,
		TenantID:        f.tenant.ID.String(),
		RentalType:      string(typ),
		RentalDateRange: &models.DateRange{From: fromT, To: toT},
	}
}

func TestCreateRentalReservesLastUnit(t *testing.T) {
	f := newRentalFixture(true)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.owner.ID, f.business.ID,
		f.request("A1", models.RentalTypeDaily, "2024-01-01", "2024-01-03"))
	require.NoError(t, err)

	assert.Equal(t, "RNTL_4001", r.RentalNumber)
	assert.Equal(t, 400.0, r.TotalAmount)
	assert.Equal(t, 200.0, r.RentalCost)
	assert.False(t, r.Settled)
	assert.Nil(t, r.DatePaid)
	assert.Equal(t, 1, f.store.calls)

	assert.False(t, f.db.unit(f.property.ID, "A1").IsAvailable)
	assert.False(t, f.db.properties[f.property.ID].IsAvailable)
}

func TestCreateRentalLosingRaceLeavesNoRental(t *testing.T) {
	f := newRentalFixture(true, true)
	ctx := context.Background()

	// Another create commits on A1 between the availability check and our
	// transaction.
	f.store.beforeTx = func() { f.db.unit(f.property.ID, "A1").IsAvailable = false }

	_, err := f.svc.Create(ctx, f.owner.ID, f.business.ID,
		f.request("A1", models.RentalTypeDaily, "2024-01-01", "2024-01-03"))
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, utils.ErrCodeUnitNotAvailable, appErr.Code)

	assert.Empty(t, f.db.rentals, "the inserted rental is rolled back")
	assert.False(t, f.db.unit(f.property.ID, "A1").IsAvailable)
	assert.True(t, f.db.unit(f.property.ID, "A2").IsAvailable)
	assert.True(t, f.db.properties[f.property.ID].IsAvailable)
}

func TestCreateMonthlyRental(t *testing.T) {
	f := newRentalFixture(true, true)

	r, err := f.svc.Create(context.Background(), f.owner.ID, f.business.ID,
		f.request("A2", models.RentalTypeMonthly, "2024-01-01", "2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, 6000.0, r.TotalAmount)
	assert.Equal(t, 6000.0, r.RentalCost)
	assert.True(t, f.db.properties[f.property.ID].IsAvailable, "A1 is still free")
}

func TestCreateRentalUsesProvidedNumber(t *testing.T) {
	f := newRentalFixture(true)
	req := f.request("A1", models.RentalTypeDaily, "2024-01-01", "2024-01-02")
	req.RentalNumber = "RNTL_9000"

	r, err := f.svc.Create(context.Background(), f.owner.ID, f.business.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "RNTL_9000", r.RentalNumber)
}

func TestCreateRentalFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("business owned by someone else", func(t *testing.T) {
		f := newRentalFixture(true)
		stranger := f.db.addUser("Stranger", "stranger@example.com")
		_, err := f.svc.Create(ctx, stranger.ID, f.business.ID,
			f.request("A1", models.RentalTypeDaily, "2024-01-01", "2024-01-03"))
		appErr := requireAppError(t, err, http.StatusMethodNotAllowed)
		assert.Equal(t, "Unauthorized", appErr.Message)
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newRentalFixture(true)
		req := f.request("A1", models.RentalTypeDaily, "2024-01-01", "2024-01-03")
		req.PropertyID = uuid.NewString()
		_, err := f.svc.Create(ctx, f.owner.ID, f.business.ID, req)
		appErr := requireAppError(t, err, http.StatusNotFound)
		assert.Equal(t, "Property Not Found", appErr.Message)
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := newRentalFixture(true)
		_, err := f.svc.Create(ctx, f.owner.ID, f.business.ID,
			f.request("Z9", models.RentalTypeDaily, "2024-01-01", "2024-01-03"))
		appErr := requireAppError(t, err, http.StatusNotFound)
		assert.Equal(t, "Unit Not Found", appErr.Message)
	})

	t.Run("unit already rented", func(t *testing.T) {
		f := newRentalFixture(false)
		_, err := f.svc.Create(ctx, f.owner.ID, f.business.ID,
			f.request("A1", models.RentalTypeDaily, "2024-01-01", "2024-01-03"))
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, utils.ErrCodeUnitNotAvailable, appErr.Code)
		assert.Empty(t, f.db.rentals)
		assert.Zero(t, f.store.calls)
	})

	t.Run("tenant from another business", func(t *testing.T) {
		f := newRentalFixture(true)
		other := f.db.addBusiness(f.owner)
		req := f.request("A1", models.RentalTypeDaily, "2024-01-01", "2024-01-03")
		req.TenantID = f.db.addTenant(other, "Other", "other@example.com").ID.String()
		_, err := f.svc.Create(ctx, f.owner.ID, f.business.ID, req)
		appErr := requireAppError(t, err, http.StatusNotFound)
		assert.Equal(t, "Tenant Not Found", appErr.Message)
		assert.True(t, f.db.unit(f.property.ID, "A1").IsAvailable)
	})

	t.Run("inverted range prices to zero", func(t *testing.T) {
		f := newRentalFixture(true)
		_, err := f.svc.Create(ctx, f.owner.ID, f.business.ID,
			f.request("A1", models.RentalTypeDaily, "2024-01-05", "2024-01-01"))
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "Invalid data!", appErr.Message)
		assert.Empty(t, f.db.rentals)
	})

	t.Run("duplicate rental number", func(t *testing.T) {
		f := newRentalFixture(true, true)
		existing := f.db.addRental(f.property, f.tenant, "A2", time.Now().Add(72*time.Hour), false)
		req := f.request("A1", models.RentalTypeDaily, "2024-01-01", "2024-01-03")
		req.RentalNumber = existing.RentalNumber
		_, err := f.svc.Create(ctx, f.owner.ID, f.business.ID, req)
		requireAppError(t, err, http.StatusConflict)
	})
}

func TestDeleteRentalReleasesUnit(t *testing.T) {
	f := newRentalFixture(true)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.owner.ID, f.business.ID,
		f.request("A1", models.RentalTypeDaily, "2024-01-01", "2024-01-03"))
	require.NoError(t, err)
	require.False(t, f.db.properties[f.property.ID].IsAvailable)

	deleted, err := f.svc.Delete(ctx, f.owner.ID, f.business.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, deleted.ID)
	assert.Empty(t, f.db.rentals)
	assert.True(t, f.db.unit(f.property.ID, "A1").IsAvailable)
	assert.True(t, f.db.properties[f.property.ID].IsAvailable)

	_, err = f.svc.Delete(ctx, f.owner.ID, f.business.ID, r.ID)
	requireAppError(t, err, http.StatusNotFound)
}

func TestSettleRestampsDatePaid(t *testing.T) {
	f := newRentalFixture(false)
	ctx := context.Background()
	r := f.db.addRental(f.property, f.tenant, "A1", time.Now().Add(24*time.Hour), false)

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return first }
	settled, err := f.svc.Settle(ctx, f.owner.ID, f.business.ID, r.ID)
	require.NoError(t, err)
	assert.True(t, settled.Settled)
	assert.Equal(t, first, *settled.DatePaid)

	second := first.Add(48 * time.Hour)
	f.svc.now = func() time.Time { return second }
	settled, err = f.svc.Settle(ctx, f.owner.ID, f.business.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, second, *settled.DatePaid)

	_, err = f.svc.Settle(ctx, f.owner.ID, f.business.ID, uuid.New())
	requireAppError(t, err, http.StatusNotFound)
}

func TestListExpiredReturnsOnlyUnsettled(t *testing.T) {
	f := newRentalFixture(false, false, false)
	now := time.Now()
	expiredUnpaid := f.db.addRental(f.property, f.tenant, "A1", now.Add(-time.Hour), false)
	f.db.addRental(f.property, f.tenant, "A2", now.Add(-time.Hour), true)
	f.db.addRental(f.property, f.tenant, "A3", now.Add(time.Hour), false)

	list, err := f.svc.ListExpired(context.Background(), f.owner.ID, f.business.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, expiredUnpaid.ID, list[0].ID)
}

func TestGetAndListRentals(t *testing.T) {
	f := newRentalFixture(false, false)
	ctx := context.Background()
	r1 := f.db.addRental(f.property, f.tenant, "A1", time.Now().Add(time.Hour), false)
	f.db.addRental(f.property, f.tenant, "A2", time.Now().Add(time.Hour), false)

	got, err := f.svc.Get(ctx, f.owner.ID, f.business.ID, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, r1.RentalNumber, got.RentalNumber)

	list, err := f.svc.List(ctx, f.owner.ID, f.business.ID, dtos.Page{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = f.svc.List(ctx, f.owner.ID, f.business.ID, dtos.Page{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.svc.Get(ctx, f.owner.ID, f.business.ID, uuid.New())
	requireAppError(t, err, http.StatusNotFound)
}

func TestNextRentalNumber(t *testing.T) {
	f := newRentalFixture(false)
	ctx := context.Background()

	n, err := f.svc.NextRentalNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RNTL_4001", n)

	r := f.db.addRental(f.property, f.tenant, "A1", time.Now(), false)
	r.RentalNumber = "RNTL_4012"
	n, err = f.svc.NextRentalNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RNTL_4013", n)
}
