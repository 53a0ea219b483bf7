package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/uzeyirrr/yenicrm-sub000/internal/notify"
	"github.com/uzeyirrr/yenicrm-sub000/internal/reconciler"
	"go.uber.org/zap"
)

type viewSource interface {
	Snapshot() reconciler.View
}

type weekImageSender interface {
	SendWeekImage(ctx context.Context, png []byte, caption string)
}

// WeekReport posts the rendered week grid to the chat on a schedule, so
// the team sees the current booking picture without opening the CRM.
type WeekReport struct {
	views    viewSource
	sender   weekImageSender
	schedule string
	logger   *zap.Logger

	cron *cron.Cron
}

func NewWeekReport(views viewSource, sender weekImageSender, schedule string, logger *zap.Logger) *WeekReport {
	return &WeekReport{
		views:    views,
		sender:   sender,
		schedule: schedule,
		logger:   logger,
	}
}

func (w *WeekReport) Start(ctx context.Context) error {
	w.cron = cron.New()

	_, err := w.cron.AddFunc(w.schedule, func() {
		w.Publish(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule week report: %w", err)
	}

	w.cron.Start()
	w.logger.Info("Week report scheduled", zap.String("cron", w.schedule))

	return nil
}

func (w *WeekReport) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
}

// Publish renders the current view and sends it. A stale view is not
// sent; a wrong picture in the chat is worse than none.
func (w *WeekReport) Publish(ctx context.Context) {
	view := w.views.Snapshot()

	if view.Stale {
		w.logger.Warn("Skipping week report, view is stale")
		return
	}
	if len(view.Slots) == 0 {
		w.logger.Info("Skipping week report, no slots in range",
			zap.String("range", view.RangeStart+".."+view.RangeEnd))
		return
	}

	png, err := notify.RenderWeek(view.RangeStart, view.Slots, view.Appointments)
	if err != nil {
		w.logger.Warn("Week report rendering failed", zap.Error(err))
		return
	}

	caption := fmt.Sprintf("Wochenplan %s – %s", view.RangeStart, view.RangeEnd)
	w.sender.SendWeekImage(ctx, png, caption)

	w.logger.Info("Week report sent",
		zap.String("range", view.RangeStart+".."+view.RangeEnd),
		zap.Int("slots", len(view.Slots)))
}
