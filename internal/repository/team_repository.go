package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/uzeyirrr/yenicrm-sub000/internal/backend"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
)

type TeamRepository struct {
	client *backend.Client
}

func NewTeamRepository(client *backend.Client) *TeamRepository {
	return &TeamRepository{client: client}
}

func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	if err := r.client.Create(ctx, CollectionTeams, team, team); err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.client.GetOne(ctx, CollectionTeams, id, backend.Query{}, &team)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team by id: %w", err)
	}
	return &team, nil
}

func (r *TeamRepository) ListByCompany(ctx context.Context, companyID string) ([]*model.Team, error) {
	var teams []*model.Team
	err := r.client.List(ctx, CollectionTeams, backend.Query{
		Filter: filterEq("company", companyID),
		Sort:   "name",
	}, &teams)
	if err != nil {
		return nil, fmt.Errorf("list teams by company: %w", err)
	}
	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, id string, patch map[string]any) (*model.Team, error) {
	var team model.Team
	if err := r.client.Update(ctx, CollectionTeams, id, patch, &team); err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}
	return &team, nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, CollectionTeams, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}
