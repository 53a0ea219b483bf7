package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uzeyirrr/yenicrm-sub000/internal/model"
	"go.uber.org/zap"
)

func newDirectoryFixture() (*DirectoryService, *fakeCompanyStore, *fakeTeamStore) {
	companies := newFakeCompanyStore()
	teams := newFakeTeamStore()
	return NewDirectoryService(companies, teams, zap.NewNop()), companies, teams
}

func TestCreateTeamRequiresExistingCompany(t *testing.T) {
	svc, _, teams := newDirectoryFixture()

	err := svc.CreateTeam(context.Background(), &model.Team{
		Name:      "Vertrieb Nord",
		CompanyID: "nope",
	})
	require.ErrorIs(t, err, ErrCompanyNotFound)
	require.Empty(t, teams.teams)
}

func TestCreateTeamAttachesToCompany(t *testing.T) {
	svc, _, _ := newDirectoryFixture()

	company := &model.Company{Name: "Musterfirma", Active: true}
	require.NoError(t, svc.CreateCompany(context.Background(), company))
	require.NotEmpty(t, company.ID)

	team := &model.Team{Name: "Vertrieb Nord", CompanyID: company.ID}
	require.NoError(t, svc.CreateTeam(context.Background(), team))

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview, 1)
	require.Equal(t, company.ID, overview[0].Company.ID)
	require.Len(t, overview[0].Teams, 1)
	require.Equal(t, team.ID, overview[0].Teams[0].ID)
}

func TestCreateCompanyRequiresName(t *testing.T) {
	svc, companies, _ := newDirectoryFixture()

	require.Error(t, svc.CreateCompany(context.Background(), &model.Company{}))
	require.Empty(t, companies.companies)
}

func TestDeleteCompanyRefusedWhileTeamsAttached(t *testing.T) {
	svc, companies, _ := newDirectoryFixture()

	company := &model.Company{Name: "Musterfirma"}
	require.NoError(t, svc.CreateCompany(context.Background(), company))
	require.NoError(t, svc.CreateTeam(context.Background(), &model.Team{
		Name:      "Vertrieb Nord",
		CompanyID: company.ID,
	}))

	err := svc.DeleteCompany(context.Background(), company.ID)
	require.ErrorIs(t, err, ErrCompanyHasTeams)
	require.Empty(t, companies.deleted)
}

func TestDeleteCompanyAfterTeamsRemoved(t *testing.T) {
	svc, companies, _ := newDirectoryFixture()

	company := &model.Company{Name: "Musterfirma"}
	require.NoError(t, svc.CreateCompany(context.Background(), company))

	team := &model.Team{Name: "Vertrieb Nord", CompanyID: company.ID}
	require.NoError(t, svc.CreateTeam(context.Background(), team))

	require.NoError(t, svc.DeleteTeam(context.Background(), team.ID))
	require.NoError(t, svc.DeleteCompany(context.Background(), company.ID))
	require.Equal(t, []string{company.ID}, companies.deleted)
}

func TestDeleteTeamNotFound(t *testing.T) {
	svc, _, _ := newDirectoryFixture()
	require.ErrorIs(t, svc.DeleteTeam(context.Background(), "nope"), ErrTeamNotFound)
}
