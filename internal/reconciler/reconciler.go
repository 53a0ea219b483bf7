package reconciler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/uzeyirrr/yenicrm-sub000/internal/backend"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"github.com/uzeyirrr/yenicrm-sub000/internal/repository"
	"go.uber.org/zap"
)

const (
	defaultDebounce = 250 * time.Millisecond

	// A busy feed keeps refreshing the debounce window; the cap forces a
	// reload through anyway so a steady event stream cannot starve us.
	defaultMaxDebounce = 4 * defaultDebounce
)

type SlotSource interface {
	ListAll(ctx context.Context) ([]*model.Slot, error)
}

type AppointmentSource interface {
	ListBySlotIDs(ctx context.Context, slotIDs []string) ([]*model.Appointment, error)
}

type Subscription interface {
	Close() error
}

// Feed delivers change events for the watched collections.
type Feed interface {
	Subscribe(ctx context.Context, collections []string, h backend.Handler) (Subscription, error)
}

// ClientFeed adapts the backend client to the Feed interface.
type ClientFeed struct {
	Client *backend.Client
}

func (f ClientFeed) Subscribe(ctx context.Context, collections []string, h backend.Handler) (Subscription, error) {
	return f.Client.Subscribe(ctx, collections, h)
}

// View is one consistent rendering of the visible range. Snapshots are
// rebuilt whole on every reload; treat the slices and map as read-only.
type View struct {
	RangeStart   string
	RangeEnd     string
	Slots        []*model.Slot
	Appointments map[string][]*model.Appointment // slot ID -> ordered appointments

	// Stale is set when the last reload failed; the data shown is the
	// last-known-good state, never cleared to empty.
	Stale    bool
	LoadedAt time.Time
}

// Reconciler keeps an in-memory slot/appointment view for a date range
// consistent with the backend under the push feed. Events are not merged
// field by field: every event is only a freshness signal, and the answer
// to any of them is one full reload of the active range. Event payloads
// don't reliably carry expanded relations, so partial application would
// risk rendering stale related records.
type Reconciler struct {
	slots  SlotSource
	appts  AppointmentSource
	feed   Feed
	logger *zap.Logger

	debounce    time.Duration
	maxDebounce time.Duration

	events chan struct{}
	force  chan struct{}

	mu         sync.RWMutex
	rangeStart string
	rangeEnd   string
	view       View
	gen        uint64
	applied    uint64
}

type Option func(*Reconciler)

// WithDebounce overrides the event coalescing window and its cap.
func WithDebounce(window, max time.Duration) Option {
	return func(r *Reconciler) {
		r.debounce = window
		r.maxDebounce = max
	}
}

func New(slots SlotSource, appts AppointmentSource, feed Feed, rangeStart, rangeEnd string, logger *zap.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		slots:       slots,
		appts:       appts,
		feed:        feed,
		logger:      logger,
		debounce:    defaultDebounce,
		maxDebounce: defaultMaxDebounce,
		events:      make(chan struct{}, 1),
		force:       make(chan struct{}, 1),
		rangeStart:  rangeStart,
		rangeEnd:    rangeEnd,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run subscribes to the watched collections and loops until ctx is
// cancelled: event, quiet window, one reload, snapshot swap. The
// subscription is released on the way out so no callback outlives the view.
func (r *Reconciler) Run(ctx context.Context) error {
	watched := []string{repository.CollectionSlots, repository.CollectionAppointments}

	sub, err := r.feed.Subscribe(ctx, watched, func(e backend.Event) {
		r.logger.Debug("Change event received",
			zap.String("collection", e.Collection),
			zap.String("action", string(e.Action)))
		signal(r.events)
	})
	if err != nil {
		return fmt.Errorf("subscribe change feed: %w", err)
	}
	defer sub.Close()

	if err := r.Reload(ctx); err != nil {
		r.logger.Warn("Initial load failed, starting stale", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.force:
			r.reloadLogged(ctx)
		case <-r.events:
			r.waitQuiet(ctx)
			r.reloadLogged(ctx)
		}
	}
}

// SetRange moves the visible window and forces a reload.
func (r *Reconciler) SetRange(rangeStart, rangeEnd string) {
	r.mu.Lock()
	r.rangeStart = rangeStart
	r.rangeEnd = rangeEnd
	r.mu.Unlock()

	signal(r.force)
}

// Snapshot returns the last-known-good view.
func (r *Reconciler) Snapshot() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view
}

// Reload fetches the current server state for the active range and swaps
// it in. Slots come back unfiltered (the backend's date filter on this
// field is unreliable) and are narrowed client-side to the inclusive
// range; appointments are fetched only for the surviving slots.
func (r *Reconciler) Reload(ctx context.Context) error {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	from, to := r.rangeStart, r.rangeEnd
	r.mu.Unlock()

	slots, err := r.slots.ListAll(ctx)
	if err != nil {
		r.markStale(gen, err)
		return err
	}

	visible := make([]*model.Slot, 0, len(slots))
	for _, slot := range slots {
		if model.DateInRange(slot.Date, from, to) {
			visible = append(visible, slot)
		}
	}

	slotIDs := make([]string, len(visible))
	for i, slot := range visible {
		slotIDs[i] = slot.ID
	}

	var appts []*model.Appointment
	if len(slotIDs) > 0 {
		appts, err = r.appts.ListBySlotIDs(ctx, slotIDs)
		if err != nil {
			r.markStale(gen, err)
			return err
		}
	}

	bySlot := make(map[string][]*model.Appointment, len(visible))
	for _, appt := range appts {
		bySlot[appt.SlotID] = append(bySlot[appt.SlotID], appt)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// A newer reload finished while this one was in flight; swapping in
	// this result would roll the view back.
	if gen < r.applied {
		r.logger.Debug("Discarding out-of-date reload",
			zap.Uint64("gen", gen), zap.Uint64("applied", r.applied))
		return nil
	}

	r.applied = gen
	r.view = View{
		RangeStart:   from,
		RangeEnd:     to,
		Slots:        visible,
		Appointments: bySlot,
		LoadedAt:     time.Now(),
	}

	r.logger.Debug("View reloaded",
		zap.String("range", from+".."+to),
		zap.Int("slots", len(visible)),
		zap.Int("appointments", len(appts)))

	return nil
}

// waitQuiet holds off the reload while events keep arriving, up to the cap.
func (r *Reconciler) waitQuiet(ctx context.Context) {
	timer := time.NewTimer(r.debounce)
	defer timer.Stop()

	deadline := time.Now().Add(r.maxDebounce)

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case <-r.events:
			if time.Now().After(deadline) {
				return
			}
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(r.debounce)
		}
	}
}

func (r *Reconciler) reloadLogged(ctx context.Context) {
	if err := r.Reload(ctx); err != nil && ctx.Err() == nil {
		r.logger.Warn("Reload failed, keeping last-known-good view", zap.Error(err))
	}
}

// markStale flags the current view without touching its data. A failure
// from a reload older than the applied view proves nothing about the view;
// the same generation guard as the success path applies.
func (r *Reconciler) markStale(gen uint64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen < r.applied {
		return
	}
	r.view.Stale = true

	r.logger.Warn("View is stale", zap.Error(err))
}

// signal is a non-blocking send; a pending signal already covers us.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
