package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
)

// In-memory stores standing in for the backend repositories.

type fakeSlotStore struct {
	mu      sync.Mutex
	slots   map[string]*model.Slot
	deleted []string
	nextID  int
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{slots: map[string]*model.Slot{}}
}

func (f *fakeSlotStore) Create(_ context.Context, slot *model.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	slot.ID = fmt.Sprintf("slot-%d", f.nextID)
	cp := *slot
	f.slots[slot.ID] = &cp
	return nil
}

func (f *fakeSlotStore) GetByID(_ context.Context, id string) (*model.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *slot
	return &cp, nil
}

func (f *fakeSlotStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.slots, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeApptStore struct {
	mu      sync.Mutex
	appts   map[string]*model.Appointment
	order   []string
	deleted []string

	// failCreateAt fails the n-th Create (1-based) when set.
	failCreateAt int
	creates      int
}

func newFakeApptStore() *fakeApptStore {
	return &fakeApptStore{appts: map[string]*model.Appointment{}}
}

func (f *fakeApptStore) Create(_ context.Context, appt *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.failCreateAt > 0 && f.creates == f.failCreateAt {
		return errors.New("backend rejected create")
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	f.order = append(f.order, appt.ID)
	return nil
}

func (f *fakeApptStore) GetByID(_ context.Context, id string) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return nil, nil
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeApptStore) UpdateStatus(_ context.Context, id string, status model.AppointmentStatus, customerID string) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return nil, errors.New("appointment missing")
	}
	appt.Status = status
	appt.CustomerID = customerID
	cp := *appt
	return &cp, nil
}

func (f *fakeApptStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeApptStore) put(appt *model.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *appt
	f.appts[appt.ID] = &cp
	f.order = append(f.order, appt.ID)
}

type fakeCustomerStore struct {
	mu        sync.Mutex
	customers map[string]*model.Customer
	patches   []map[string]any
	deleted   []string
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: map[string]*model.Customer{}}
}

func (f *fakeCustomerStore) Create(_ context.Context, customer *model.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if customer.ID == "" {
		customer.ID = fmt.Sprintf("customer-%d", len(f.customers)+1)
	}
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerStore) GetByID(_ context.Context, id string) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *customer
	return &cp, nil
}

func (f *fakeCustomerStore) Patch(_ context.Context, id string, fields map[string]any) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer, ok := f.customers[id]
	if !ok {
		return nil, errors.New("customer missing")
	}
	f.patches = append(f.patches, fields)
	for key, value := range fields {
		switch key {
		case "qc_on":
			customer.QCOn = value.(model.QCOnStatus)
		case "qc_final":
			customer.QCFinal = value.(model.QCFinalStatus)
		case "name":
			customer.Name = value.(string)
		}
	}
	cp := *customer
	return &cp, nil
}

func (f *fakeCustomerStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.customers, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	booked []string // "appointmentID/customerID"
}

func (f *fakeNotifier) AppointmentBooked(_ context.Context, appt *model.Appointment, customer *model.Customer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked = append(f.booked, appt.ID+"/"+customer.ID)
}

type fakeCompanyStore struct {
	mu        sync.Mutex
	companies map[string]*model.Company
	deleted   []string
	nextID    int
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{companies: map[string]*model.Company{}}
}

func (f *fakeCompanyStore) Create(_ context.Context, company *model.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	company.ID = fmt.Sprintf("company-%d", f.nextID)
	cp := *company
	f.companies[company.ID] = &cp
	return nil
}

func (f *fakeCompanyStore) GetByID(_ context.Context, id string) (*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	company, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *company
	return &cp, nil
}

func (f *fakeCompanyStore) ListAll(_ context.Context) ([]*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Company, 0, len(f.companies))
	for _, company := range f.companies {
		cp := *company
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCompanyStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.companies, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTeamStore struct {
	mu      sync.Mutex
	teams   map[string]*model.Team
	deleted []string
	nextID  int
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{teams: map[string]*model.Team{}}
}

func (f *fakeTeamStore) Create(_ context.Context, team *model.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	team.ID = fmt.Sprintf("team-%d", f.nextID)
	cp := *team
	f.teams[team.ID] = &cp
	return nil
}

func (f *fakeTeamStore) GetByID(_ context.Context, id string) (*model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	cp := *team
	return &cp, nil
}

func (f *fakeTeamStore) ListByCompany(_ context.Context, companyID string) ([]*model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Team
	for _, team := range f.teams {
		if team.CompanyID == companyID {
			cp := *team
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTeamStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.teams, id)
	f.deleted = append(f.deleted, id)
	return nil
}
