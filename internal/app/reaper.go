package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"github.com/uzeyirrr/yenicrm-sub000/internal/service"
	"go.uber.org/zap"
)

type appointmentLister interface {
	ListByStatus(ctx context.Context, status model.AppointmentStatus) ([]*model.Appointment, error)
}

type claimReleaser interface {
	Release(ctx context.Context, apptID string) (*model.Appointment, error)
}

// Reaper releases abandoned edit claims. Claims are advisory and nothing
// server-side expires them, so an agent closing a laptop mid-booking would
// otherwise hold an appointment forever.
type Reaper struct {
	appts    appointmentLister
	releaser claimReleaser
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger

	cron *cron.Cron
}

func NewReaper(appts appointmentLister, releaser claimReleaser, ttl, interval time.Duration, logger *zap.Logger) *Reaper {
	return &Reaper{
		appts:    appts,
		releaser: releaser,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the reap job and a nightly inventory log.
func (r *Reaper) Start(ctx context.Context) error {
	r.cron = cron.New()

	_, err := r.cron.AddFunc(fmt.Sprintf("@every %s", r.interval), func() {
		r.releaseStaleClaims(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule claim reaper: %w", err)
	}

	_, err = r.cron.AddFunc("0 3 * * *", func() {
		r.logInventory(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule inventory job: %w", err)
	}

	r.cron.Start()
	r.logger.Info("Claim reaper started",
		zap.Duration("interval", r.interval),
		zap.Duration("claim_ttl", r.ttl))

	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (r *Reaper) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
	r.logger.Info("Claim reaper stopped")
}

func (r *Reaper) releaseStaleClaims(ctx context.Context) {
	claimed, err := r.appts.ListByStatus(ctx, model.AppointmentStatusEdit)
	if err != nil {
		r.logger.Warn("Reaper could not list claimed appointments", zap.Error(err))
		return
	}

	released := 0
	for _, appt := range claimed {
		updated, err := model.ParseBackendTime(appt.Updated)
		if err != nil {
			r.logger.Warn("Claimed appointment has unreadable timestamp",
				zap.String("appointment_id", appt.ID), zap.Error(err))
			continue
		}
		if time.Since(updated) < r.ttl {
			continue
		}

		if _, err := r.releaser.Release(ctx, appt.ID); err != nil {
			// The claim may have resolved between list and release.
			if errors.Is(err, service.ErrAlreadyBooked) || errors.Is(err, service.ErrAppointmentNotFound) {
				continue
			}
			r.logger.Warn("Failed to release stale claim",
				zap.String("appointment_id", appt.ID), zap.Error(err))
			continue
		}

		released++
		r.logger.Info("Released stale claim",
			zap.String("appointment_id", appt.ID),
			zap.Time("claimed_at", updated))
	}

	if released > 0 {
		r.logger.Info("Stale claim sweep finished", zap.Int("released", released))
	}
}

func (r *Reaper) logInventory(ctx context.Context) {
	counts := map[model.AppointmentStatus]int{}
	for _, status := range []model.AppointmentStatus{
		model.AppointmentStatusEmpty,
		model.AppointmentStatusEdit,
		model.AppointmentStatusOkay,
	} {
		appts, err := r.appts.ListByStatus(ctx, status)
		if err != nil {
			r.logger.Warn("Inventory count failed",
				zap.String("status", string(status)), zap.Error(err))
			return
		}
		counts[status] = len(appts)
	}

	r.logger.Info("Appointment inventory",
		zap.Int("empty", counts[model.AppointmentStatusEmpty]),
		zap.Int("edit", counts[model.AppointmentStatusEdit]),
		zap.Int("okay", counts[model.AppointmentStatusOkay]))
}
