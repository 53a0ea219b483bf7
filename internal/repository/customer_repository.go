package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/uzeyirrr/yenicrm-sub000/internal/backend"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
)

type CustomerRepository struct {
	client *backend.Client
}

func NewCustomerRepository(client *backend.Client) *CustomerRepository {
	return &CustomerRepository{client: client}
}

// Create inserts a new customer record.
func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	if err := r.client.Create(ctx, CollectionCustomers, customer, customer); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// GetByID fetches a customer, nil when it does not exist.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	err := r.client.GetOne(ctx, CollectionCustomers, id, backend.Query{}, &customer)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	return &customer, nil
}

// ListAll fetches every customer, newest first.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]*model.Customer, error) {
	var customers []*model.Customer
	err := r.client.List(ctx, CollectionCustomers, backend.Query{Sort: "-created"}, &customers)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// ListByQCOn fetches one pre-QC board column.
func (r *CustomerRepository) ListByQCOn(ctx context.Context, status model.QCOnStatus) ([]*model.Customer, error) {
	var customers []*model.Customer
	err := r.client.List(ctx, CollectionCustomers, backend.Query{
		Filter: filterEq("qc_on", string(status)),
		Sort:   "-created",
	}, &customers)
	if err != nil {
		return nil, fmt.Errorf("list customers by qc_on: %w", err)
	}
	return customers, nil
}

// ListByQCFinal fetches one final-QC board column.
func (r *CustomerRepository) ListByQCFinal(ctx context.Context, status model.QCFinalStatus) ([]*model.Customer, error) {
	var customers []*model.Customer
	err := r.client.List(ctx, CollectionCustomers, backend.Query{
		Filter: filterEq("qc_final", string(status)),
		Sort:   "-created",
	}, &customers)
	if err != nil {
		return nil, fmt.Errorf("list customers by qc_final: %w", err)
	}
	return customers, nil
}

// Patch writes only the given fields on a customer record.
func (r *CustomerRepository) Patch(ctx context.Context, id string, fields map[string]any) (*model.Customer, error) {
	var customer model.Customer
	if err := r.client.Update(ctx, CollectionCustomers, id, fields, &customer); err != nil {
		return nil, fmt.Errorf("patch customer: %w", err)
	}
	return &customer, nil
}

// Delete removes a customer record.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, CollectionCustomers, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
