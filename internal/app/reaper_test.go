package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"github.com/uzeyirrr/yenicrm-sub000/internal/service"
	"go.uber.org/zap"
)

type fakeLister struct {
	appts []*model.Appointment
}

func (f *fakeLister) ListByStatus(_ context.Context, status model.AppointmentStatus) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeReleaser struct {
	released []string
	errs     map[string]error
}

func (f *fakeReleaser) Release(_ context.Context, id string) (*model.Appointment, error) {
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	f.released = append(f.released, id)
	return &model.Appointment{ID: id, Status: model.AppointmentStatusEmpty}, nil
}

func backendStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05.000Z")
}

func TestReaperReleasesOnlyStaleClaims(t *testing.T) {
	now := time.Now()
	lister := &fakeLister{appts: []*model.Appointment{
		{ID: "stale", Status: model.AppointmentStatusEdit, Updated: backendStamp(now.Add(-time.Hour))},
		{ID: "fresh", Status: model.AppointmentStatusEdit, Updated: backendStamp(now.Add(-time.Minute))},
		{ID: "booked", Status: model.AppointmentStatusOkay, Updated: backendStamp(now.Add(-time.Hour))},
	}}
	releaser := &fakeReleaser{}

	r := NewReaper(lister, releaser, 15*time.Minute, time.Minute, zap.NewNop())
	r.releaseStaleClaims(context.Background())

	require.Equal(t, []string{"stale"}, releaser.released)
}

func TestReaperToleratesRacedClaims(t *testing.T) {
	now := time.Now()
	lister := &fakeLister{appts: []*model.Appointment{
		{ID: "won", Status: model.AppointmentStatusEdit, Updated: backendStamp(now.Add(-time.Hour))},
		{ID: "gone", Status: model.AppointmentStatusEdit, Updated: backendStamp(now.Add(-time.Hour))},
		{ID: "ok", Status: model.AppointmentStatusEdit, Updated: backendStamp(now.Add(-time.Hour))},
	}}
	releaser := &fakeReleaser{errs: map[string]error{
		"won":  service.ErrAlreadyBooked,
		"gone": service.ErrAppointmentNotFound,
	}}

	r := NewReaper(lister, releaser, 15*time.Minute, time.Minute, zap.NewNop())
	r.releaseStaleClaims(context.Background())

	require.Equal(t, []string{"ok"}, releaser.released,
		"claims resolved between list and release are skipped, the sweep continues")
}

func TestReaperSkipsUnreadableTimestamps(t *testing.T) {
	lister := &fakeLister{appts: []*model.Appointment{
		{ID: "bad", Status: model.AppointmentStatusEdit, Updated: "not a timestamp"},
	}}
	releaser := &fakeReleaser{}

	r := NewReaper(lister, releaser, 15*time.Minute, time.Minute, zap.NewNop())
	r.releaseStaleClaims(context.Background())

	require.Empty(t, releaser.released)
}
