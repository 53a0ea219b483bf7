package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"go.uber.org/zap"
)

func validSlotInput() CreateSlotInput {
	return CreateSlotInput{
		Name:     "Beratung",
		Date:     "2026-08-24",
		Start:    "11:00",
		End:      "19:00",
		Capacity: 4,
		Space:    120,
		Category: "cat-1",
		Company:  "company-1",
		Team:     "team-1",
	}
}

func TestCreateSlotGeneratesAppointments(t *testing.T) {
	slots := newFakeSlotStore()
	appts := newFakeApptStore()
	svc := NewSlotService(slots, appts, zap.NewNop())

	slot, err := svc.CreateSlot(context.Background(), validSlotInput())
	require.NoError(t, err)

	// floor((19:00-11:00)/120m) = 4 appointments at 11,13,15,17
	require.Len(t, slot.Appointments, 4)
	require.Len(t, appts.order, 4)
	require.Equal(t, slot.Appointments, appts.order,
		"slot must reference the generated appointments in order")

	wantTimes := []string{"11:00", "13:00", "15:00", "17:00"}
	for i, id := range appts.order {
		appt, err := appts.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, wantTimes[i], appt.Time)
		require.Equal(t, slot.ID, appt.SlotID)
		require.Equal(t, slot.Date, appt.Date)
		require.Equal(t, model.AppointmentStatusEmpty, appt.Status)
		require.Empty(t, appt.CustomerID)
	}

	require.True(t, slot.Active)
}

func TestCreateSlotFailsFastOnEmptyWindow(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*CreateSlotInput)
	}{
		{"end equals start", func(in *CreateSlotInput) { in.End = in.Start }},
		{"end before start", func(in *CreateSlotInput) { in.Start, in.End = "19:00", "11:00" }},
		{"window shorter than space", func(in *CreateSlotInput) { in.End = "11:30" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			slots := newFakeSlotStore()
			appts := newFakeApptStore()
			svc := NewSlotService(slots, appts, zap.NewNop())

			input := validSlotInput()
			c.mut(&input)

			_, err := svc.CreateSlot(context.Background(), input)
			require.ErrorIs(t, err, ErrNoAppointments)
			require.Empty(t, slots.slots, "no slot record may exist after a failed generation")
			require.Empty(t, appts.order)
		})
	}
}

func TestCreateSlotRejectsInvalidInput(t *testing.T) {
	slots := newFakeSlotStore()
	appts := newFakeApptStore()
	svc := NewSlotService(slots, appts, zap.NewNop())

	input := validSlotInput()
	input.Space = 0

	_, err := svc.CreateSlot(context.Background(), input)
	require.Error(t, err)
	require.Empty(t, slots.slots)
}

func TestCreateSlotRollsBackOnPartialFailure(t *testing.T) {
	slots := newFakeSlotStore()
	appts := newFakeApptStore()
	appts.failCreateAt = 3
	svc := NewSlotService(slots, appts, zap.NewNop())

	_, err := svc.CreateSlot(context.Background(), validSlotInput())
	require.Error(t, err)

	require.Empty(t, slots.slots, "slot must be removed when generation fails halfway")
	require.Len(t, appts.deleted, 2, "the two created appointments must be cleaned up")
}

func TestDeleteSlotCascades(t *testing.T) {
	slots := newFakeSlotStore()
	appts := newFakeApptStore()
	svc := NewSlotService(slots, appts, zap.NewNop())

	slot, err := svc.CreateSlot(context.Background(), validSlotInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSlot(context.Background(), slot.ID))

	require.Empty(t, slots.slots)
	require.ElementsMatch(t, slot.Appointments, appts.deleted)
}

func TestDeleteSlotNotFound(t *testing.T) {
	svc := NewSlotService(newFakeSlotStore(), newFakeApptStore(), zap.NewNop())

	err := svc.DeleteSlot(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSlotNotFound)
}
