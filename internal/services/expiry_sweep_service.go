package services

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AbdellahHatouchi/property-management/internal/config"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type SweepResult struct {
	Expired  int `json:"expired"`
	Released int `json:"released"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
}

// ExpirySweepService releases the units of expired, settled rentals and
// notifies tenants and owners of every expired rental.
type ExpirySweepService struct {
	cfg          *config.Config
	store        repositories.Store
	availability *AvailabilityService
	mailer       Mailer
	now          func() time.Time
}

func NewExpirySweepService(
	cfg *config.Config,
	store repositories.Store,
	availability *AvailabilityService,
	mailer Mailer,
) *ExpirySweepService {
	return &ExpirySweepService{
		cfg:          cfg,
		store:        store,
		availability: availability,
		mailer:       mailer,
		now:          time.Now,
	}
}

// Sweep runs in two phases. The release phase is one transaction; if it
// fails nothing is sent. The notify phase runs after commit and waits for
// every send: a failed send is counted and logged but never aborts the
// others or undoes the releases.
func (s *ExpirySweepService) Sweep(ctx context.Context) (SweepResult, error) {
	var (
		res     SweepResult
		expired []*models.ExpiredRental
	)

	now := s.now()
	err := s.store.WithTx(ctx, func(tx repositories.Repos) error {
		list, err := tx.Rentals.ListExpired(ctx, now)
		if err != nil {
			return err
		}
		released := 0
		for _, r := range list {
			// Unpaid rentals keep their unit until they are settled or deleted.
			if !r.Settled {
				continue
			}
			// The unit may have been rented again since this rental ended.
			held, err := tx.Rentals.HasActiveRental(ctx, r.PropertyID, r.Unit, now)
			if err != nil {
				return err
			}
			if held {
				continue
			}
			if err := s.availability.Release(ctx, tx, r.PropertyID, r.Unit); err != nil {
				return err
			}
			released++
		}
		expired = list
		res.Released = released
		return nil
	})
	if err != nil {
		utils.Logger.WithError(err).Error("Expiry sweep release phase failed")
		return SweepResult{}, err
	}
	res.Expired = len(expired)

	var sent, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.maxConcurrentSends())
	for _, r := range expired {
		r := r
		for _, msg := range expiredRentalMessages(s.cfg.OrganizationName, r) {
			msg := msg
			g.Go(func() error {
				if err := s.mailer.Send(ctx, msg); err != nil {
					failed.Add(1)
					utils.Logger.WithError(err).
						WithField("rental_id", r.ID).
						Warnf("Failed to send expiry notice to %s", msg.ToEmail)
					return nil
				}
				sent.Add(1)
				return nil
			})
		}
	}
	_ = g.Wait()

	res.Sent = int(sent.Load())
	res.Failed = int(failed.Load())

	utils.Logger.Infof(
		"Expiry sweep done: expired=%d released=%d sent=%d failed=%d",
		res.Expired, res.Released, res.Sent, res.Failed,
	)
	return res, nil
}

func (s *ExpirySweepService) maxConcurrentSends() int {
	if s.cfg == nil || s.cfg.SweepMaxConcurrentSends <= 0 {
		return 1
	}
	return s.cfg.SweepMaxConcurrentSends
}
