package service

import (
	"context"
	"fmt"

	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"go.uber.org/zap"
)

// DirectoryService manages the company/team structure slots hang off of.
type DirectoryService struct {
	companies CompanyStore
	teams     TeamStore
	logger    *zap.Logger
}

func NewDirectoryService(companies CompanyStore, teams TeamStore, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		companies: companies,
		teams:     teams,
		logger:    logger,
	}
}

// CompanyTeams is one company with its teams resolved.
type CompanyTeams struct {
	Company *model.Company
	Teams   []*model.Team
}

// Overview lists every company with its teams.
func (s *DirectoryService) Overview(ctx context.Context) ([]CompanyTeams, error) {
	companies, err := s.companies.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	out := make([]CompanyTeams, 0, len(companies))
	for _, company := range companies {
		teams, err := s.teams.ListByCompany(ctx, company.ID)
		if err != nil {
			return nil, fmt.Errorf("list teams of %s: %w", company.ID, err)
		}
		out = append(out, CompanyTeams{Company: company, Teams: teams})
	}
	return out, nil
}

func (s *DirectoryService) CreateCompany(ctx context.Context, company *model.Company) error {
	if company.Name == "" {
		return fmt.Errorf("company name is required")
	}

	if err := s.companies.Create(ctx, company); err != nil {
		return fmt.Errorf("create company: %w", err)
	}

	s.logger.Info("Company created",
		zap.String("company_id", company.ID),
		zap.String("name", company.Name))

	return nil
}

// CreateTeam attaches a new team to an existing company.
func (s *DirectoryService) CreateTeam(ctx context.Context, team *model.Team) error {
	if team.Name == "" {
		return fmt.Errorf("team name is required")
	}

	company, err := s.companies.GetByID(ctx, team.CompanyID)
	if err != nil {
		return fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return ErrCompanyNotFound
	}

	if err := s.teams.Create(ctx, team); err != nil {
		return fmt.Errorf("create team: %w", err)
	}

	s.logger.Info("Team created",
		zap.String("team_id", team.ID),
		zap.String("company_id", team.CompanyID),
		zap.String("name", team.Name))

	return nil
}

// DeleteCompany removes a company. Companies with teams still attached are
// refused; slots referencing their teams would silently orphan otherwise.
func (s *DirectoryService) DeleteCompany(ctx context.Context, companyID string) error {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return ErrCompanyNotFound
	}

	teams, err := s.teams.ListByCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("list teams of %s: %w", companyID, err)
	}
	if len(teams) > 0 {
		return ErrCompanyHasTeams
	}

	if err := s.companies.Delete(ctx, companyID); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}

	s.logger.Info("Company deleted", zap.String("company_id", companyID))
	return nil
}

func (s *DirectoryService) DeleteTeam(ctx context.Context, teamID string) error {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if team == nil {
		return ErrTeamNotFound
	}

	if err := s.teams.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.Info("Team deleted",
		zap.String("team_id", teamID),
		zap.String("company_id", team.CompanyID))

	return nil
}
