package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"go.uber.org/zap"
)

type SlotService struct {
	slots    SlotStore
	appts    AppointmentStore
	validate *validator.Validate
	logger   *zap.Logger
}

func NewSlotService(slots SlotStore, appts AppointmentStore, logger *zap.Logger) *SlotService {
	return &SlotService{
		slots:    slots,
		appts:    appts,
		validate: validator.New(),
		logger:   logger,
	}
}

type CreateSlotInput struct {
	Name     string `validate:"required"`
	Date     string `validate:"required,datetime=2006-01-02"`
	Start    string `validate:"required,datetime=15:04"`
	End      string `validate:"required,datetime=15:04"`
	Capacity int    `validate:"gte=0"`
	Space    int    `validate:"required,gt=0"`
	Category string `validate:"required"`
	Company  string `validate:"required"`
	Team     string `validate:"required"`
}

// CreateSlot creates a slot and its generated appointments: one per space
// interval, at start, start+space and so on. Appointment IDs are generated
// client-side so the slot record can carry the ordered list up front.
func (s *SlotService) CreateSlot(ctx context.Context, input CreateSlotInput) (*model.Slot, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("validate slot input: %w", err)
	}

	times, err := model.SlotTimes(input.Start, input.End, input.Space)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAppointments, err)
	}

	ids := make([]string, len(times))
	for i := range ids {
		ids[i] = uuid.NewString()
	}

	slot := &model.Slot{
		Name:         input.Name,
		Date:         input.Date,
		Start:        input.Start,
		End:          input.End,
		Capacity:     input.Capacity,
		Space:        input.Space,
		CategoryID:   input.Category,
		CompanyID:    input.Company,
		TeamID:       input.Team,
		Active:       true,
		Appointments: ids,
	}

	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	for i, at := range times {
		appt := &model.Appointment{
			ID:     ids[i],
			SlotID: slot.ID,
			Date:   input.Date,
			Time:   at,
			Status: model.AppointmentStatusEmpty,
		}
		if err := s.appts.Create(ctx, appt); err != nil {
			// No transactions on this backend: undo what we can and fail.
			s.rollbackCreate(ctx, slot.ID, ids[:i])
			return nil, fmt.Errorf("create appointment %d of %d: %w", i+1, len(times), err)
		}
	}

	s.logger.Info("Slot created",
		zap.String("slot_id", slot.ID),
		zap.String("date", slot.Date),
		zap.String("window", slot.Start+"-"+slot.End),
		zap.Int("appointments", len(times)),
	)

	return slot, nil
}

// DeleteSlot removes the slot and then its appointments. The cascade is
// best-effort: a failing appointment delete is logged and skipped, the
// backend holds no referential integrity for us either way.
func (s *SlotService) DeleteSlot(ctx context.Context, slotID string) error {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return ErrSlotNotFound
	}

	if err := s.slots.Delete(ctx, slotID); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	for _, apptID := range slot.Appointments {
		if err := s.appts.Delete(ctx, apptID); err != nil {
			s.logger.Warn("Cascade delete left an orphan appointment",
				zap.String("slot_id", slotID),
				zap.String("appointment_id", apptID),
				zap.Error(err))
		}
	}

	s.logger.Info("Slot deleted",
		zap.String("slot_id", slotID),
		zap.Int("appointments", len(slot.Appointments)))

	return nil
}

func (s *SlotService) rollbackCreate(ctx context.Context, slotID string, apptIDs []string) {
	for _, id := range apptIDs {
		if err := s.appts.Delete(ctx, id); err != nil {
			s.logger.Warn("Rollback left an orphan appointment",
				zap.String("appointment_id", id), zap.Error(err))
		}
	}
	if err := s.slots.Delete(ctx, slotID); err != nil {
		s.logger.Warn("Rollback left an orphan slot",
			zap.String("slot_id", slotID), zap.Error(err))
	}
}
