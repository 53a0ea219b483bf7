package service

import (
	"context"

	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
)

// Store interfaces consumed by the services. The repository package
// implements them against the backend; tests implement them in memory.

type SlotStore interface {
	Create(ctx context.Context, slot *model.Slot) error
	GetByID(ctx context.Context, id string) (*model.Slot, error)
	Delete(ctx context.Context, id string) error
}

type AppointmentStore interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, customerID string) (*model.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type CustomerStore interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	Patch(ctx context.Context, id string, fields map[string]any) (*model.Customer, error)
	Delete(ctx context.Context, id string) error
}

type CompanyStore interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id string) (*model.Company, error)
	ListAll(ctx context.Context) ([]*model.Company, error)
	Delete(ctx context.Context, id string) error
}

type TeamStore interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	ListByCompany(ctx context.Context, companyID string) ([]*model.Team, error)
	Delete(ctx context.Context, id string) error
}

// Notifier announces bookings to the outside world. A nil notifier is
// valid and means notifications are disabled.
type Notifier interface {
	AppointmentBooked(ctx context.Context, appt *model.Appointment, customer *model.Customer)
}
