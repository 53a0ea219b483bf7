package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/uzeyirrr/yenicrm-sub000/internal/backend"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
)

type CompanyRepository struct {
	client *backend.Client
}

func NewCompanyRepository(client *backend.Client) *CompanyRepository {
	return &CompanyRepository{client: client}
}

func (r *CompanyRepository) Create(ctx context.Context, company *model.Company) error {
	if err := r.client.Create(ctx, CollectionCompanies, company, company); err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := r.client.GetOne(ctx, CollectionCompanies, id, backend.Query{}, &company)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by id: %w", err)
	}
	return &company, nil
}

func (r *CompanyRepository) ListAll(ctx context.Context) ([]*model.Company, error) {
	var companies []*model.Company
	err := r.client.List(ctx, CollectionCompanies, backend.Query{Sort: "name"}, &companies)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

func (r *CompanyRepository) Update(ctx context.Context, id string, patch map[string]any) (*model.Company, error) {
	var company model.Company
	if err := r.client.Update(ctx, CollectionCompanies, id, patch, &company); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	return &company, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, CollectionCompanies, id); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
