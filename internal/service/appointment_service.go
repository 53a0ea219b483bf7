package service

import (
	"context"
	"fmt"

	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"go.uber.org/zap"
)

// AppointmentService owns the appointment status lifecycle:
//
//	empty --Claim--> edit --AssignCustomer--> okay
//	edit --Release--> empty
//	any --Empty--> empty
//
// The edit state is an advisory claim, not a lock: the backend offers no
// compare-and-swap, so two simultaneous claims can both land server-side.
// The check here is a read-then-act guard against showing two agents the
// same booking form, nothing stronger. Transitions are never retried.
type AppointmentService struct {
	appts     AppointmentStore
	customers CustomerStore
	notifier  Notifier
	logger    *zap.Logger
}

func NewAppointmentService(appts AppointmentStore, customers CustomerStore, notifier Notifier, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appts:     appts,
		customers: customers,
		notifier:  notifier,
		logger:    logger,
	}
}

// Claim moves an empty appointment to edit. The caller must not open an
// edit form when this returns ErrAlreadyClaimed.
func (s *AppointmentService) Claim(ctx context.Context, apptID string) (*model.Appointment, error) {
	appt, err := s.appts.GetByID(ctx, apptID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}

	switch appt.Status {
	case model.AppointmentStatusEdit:
		return nil, ErrAlreadyClaimed
	case model.AppointmentStatusOkay:
		return nil, ErrAlreadyBooked
	}

	updated, err := s.appts.UpdateStatus(ctx, apptID, model.AppointmentStatusEdit, "")
	if err != nil {
		return nil, fmt.Errorf("claim appointment: %w", err)
	}

	s.logger.Info("Appointment claimed",
		zap.String("appointment_id", apptID),
		zap.String("time", appt.Time))

	return updated, nil
}

// AssignCustomer completes a claimed appointment with a customer, moving
// edit to okay. Status and customer are written in one patch so the
// okay-implies-customer invariant holds on the record at all times.
func (s *AppointmentService) AssignCustomer(ctx context.Context, apptID, customerID string) (*model.Appointment, error) {
	if customerID == "" {
		return nil, ErrMissingCustomer
	}

	appt, err := s.appts.GetByID(ctx, apptID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.Status != model.AppointmentStatusEdit {
		return nil, ErrNotClaimed
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	updated, err := s.appts.UpdateStatus(ctx, apptID, model.AppointmentStatusOkay, customerID)
	if err != nil {
		return nil, fmt.Errorf("assign customer: %w", err)
	}

	s.logger.Info("Appointment booked",
		zap.String("appointment_id", apptID),
		zap.String("customer_id", customerID),
		zap.String("date", updated.Date),
		zap.String("time", updated.Time))

	if s.notifier != nil {
		s.notifier.AppointmentBooked(ctx, updated, customer)
	}

	return updated, nil
}

// Release abandons a claim, moving edit back to empty. Releasing an
// already-empty appointment is a no-op; a booked one is left alone.
func (s *AppointmentService) Release(ctx context.Context, apptID string) (*model.Appointment, error) {
	appt, err := s.appts.GetByID(ctx, apptID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}

	switch appt.Status {
	case model.AppointmentStatusEmpty:
		return appt, nil
	case model.AppointmentStatusOkay:
		return nil, ErrAlreadyBooked
	}

	updated, err := s.appts.UpdateStatus(ctx, apptID, model.AppointmentStatusEmpty, "")
	if err != nil {
		return nil, fmt.Errorf("release appointment: %w", err)
	}

	s.logger.Info("Appointment claim released", zap.String("appointment_id", apptID))

	return updated, nil
}

// Empty is the administrative reset: any status back to empty, customer
// cleared in the same patch. This is how a filled appointment is unbooked.
func (s *AppointmentService) Empty(ctx context.Context, apptID string) (*model.Appointment, error) {
	appt, err := s.appts.GetByID(ctx, apptID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}

	if appt.Status == model.AppointmentStatusEmpty && appt.CustomerID == "" {
		return appt, nil
	}

	updated, err := s.appts.UpdateStatus(ctx, apptID, model.AppointmentStatusEmpty, "")
	if err != nil {
		return nil, fmt.Errorf("empty appointment: %w", err)
	}

	s.logger.Info("Appointment emptied",
		zap.String("appointment_id", apptID),
		zap.String("previous_status", string(appt.Status)))

	return updated, nil
}
