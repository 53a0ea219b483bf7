package service

import (
	"context"
	"fmt"

	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"go.uber.org/zap"
)

// CustomerService manages lead records and the two QC boards. The boards
// are independent: each one patches only its own status field, so moving a
// card on one board can never rewrite the other board's state.
type CustomerService struct {
	customers CustomerStore
	logger    *zap.Logger
}

func NewCustomerService(customers CustomerStore, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, logger: logger}
}

// CreateCustomer inserts a new lead, starting at the top of both boards.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	if customer.QCOn == "" {
		customer.QCOn = model.QCOnYeni
	}
	if customer.QCFinal == "" {
		customer.QCFinal = model.QCFinalYeni
	}

	if !model.ValidQCOn(customer.QCOn) || !model.ValidQCFinal(customer.QCFinal) {
		return ErrInvalidQCStatus
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID),
		zap.String("name", customer.FullName()))

	return nil
}

// SetQCOn moves a customer on the pre-QC board.
func (s *CustomerService) SetQCOn(ctx context.Context, customerID string, status model.QCOnStatus) (*model.Customer, error) {
	if !model.ValidQCOn(status) {
		return nil, fmt.Errorf("%w: qc_on=%q", ErrInvalidQCStatus, status)
	}

	customer, err := s.customers.Patch(ctx, customerID, map[string]any{
		"qc_on": status,
	})
	if err != nil {
		return nil, fmt.Errorf("set qc_on: %w", err)
	}

	s.logger.Info("Customer moved on pre-QC board",
		zap.String("customer_id", customerID),
		zap.String("qc_on", string(status)))

	return customer, nil
}

// SetQCFinal moves a customer on the final-QC board.
func (s *CustomerService) SetQCFinal(ctx context.Context, customerID string, status model.QCFinalStatus) (*model.Customer, error) {
	if !model.ValidQCFinal(status) {
		return nil, fmt.Errorf("%w: qc_final=%q", ErrInvalidQCStatus, status)
	}

	customer, err := s.customers.Patch(ctx, customerID, map[string]any{
		"qc_final": status,
	})
	if err != nil {
		return nil, fmt.Errorf("set qc_final: %w", err)
	}

	s.logger.Info("Customer moved on final-QC board",
		zap.String("customer_id", customerID),
		zap.String("qc_final", string(status)))

	return customer, nil
}

// DeleteCustomer removes a lead record.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return ErrCustomerNotFound
	}

	if err := s.customers.Delete(ctx, customerID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	s.logger.Info("Customer deleted", zap.String("customer_id", customerID))
	return nil
}
