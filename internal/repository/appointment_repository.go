package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uzeyirrr/yenicrm-sub000/internal/backend"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
)

type AppointmentRepository struct {
	client *backend.Client
}

func NewAppointmentRepository(client *backend.Client) *AppointmentRepository {
	return &AppointmentRepository{client: client}
}

// Create inserts a new appointment record.
func (r *AppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	if err := r.client.Create(ctx, CollectionAppointments, appt, appt); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// GetByID fetches an appointment, nil when it does not exist.
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.client.GetOne(ctx, CollectionAppointments, id, backend.Query{}, &appt)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}
	return &appt, nil
}

// ListBySlotIDs fetches the appointments belonging to the given slots.
// An empty ID set returns an empty list without touching the backend: a
// filter over zero slots would be an unbounded query.
func (r *AppointmentRepository) ListBySlotIDs(ctx context.Context, slotIDs []string) ([]*model.Appointment, error) {
	if len(slotIDs) == 0 {
		return []*model.Appointment{}, nil
	}

	terms := make([]string, 0, len(slotIDs))
	for _, id := range slotIDs {
		terms = append(terms, filterEq("slot", id))
	}

	var appts []*model.Appointment
	err := r.client.List(ctx, CollectionAppointments, backend.Query{
		Filter: strings.Join(terms, " || "),
		Sort:   "date,time",
	}, &appts)
	if err != nil {
		return nil, fmt.Errorf("list appointments by slots: %w", err)
	}
	return appts, nil
}

// ListByStatus fetches every appointment currently in the given status.
func (r *AppointmentRepository) ListByStatus(ctx context.Context, status model.AppointmentStatus) ([]*model.Appointment, error) {
	var appts []*model.Appointment
	err := r.client.List(ctx, CollectionAppointments, backend.Query{
		Filter: filterEq("status", string(status)),
	}, &appts)
	if err != nil {
		return nil, fmt.Errorf("list appointments by status: %w", err)
	}
	return appts, nil
}

// UpdateStatus writes the status and customer fields in one patch. These
// two always move together: okay carries a customer, everything else none.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, customerID string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.client.Update(ctx, CollectionAppointments, id, map[string]any{
		"status":   status,
		"customer": customerID,
	}, &appt)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	return &appt, nil
}

// Delete removes an appointment record.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, CollectionAppointments, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}
