package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type projectAPIStub struct {
	ports.APIBackend
	projects []ports.ProjectDTO
	created  *ports.ProjectDTO
}

func (s *projectAPIStub) ListProjects(context.Context) ([]ports.ProjectDTO, error) {
	return s.projects, nil
}

func (s *projectAPIStub) CreateProject(_ context.Context, in ports.ProjectDTO) (*ports.ProjectDTO, error) {
	s.created = &in
	out := in
	out.ID = 5
	return &out, nil
}

func TestProjectListPrefersEmbeddedSummaries(t *testing.T) {
	stub := &projectAPIStub{projects: []ports.ProjectDTO{{
		ID:          1,
		ProjectName: "Storefront",
		Status:      "IN_PROGRESS",
		Servers: []ports.ServerSummaryDTO{
			{ID: 10, ServerName: "web-01"},
			{ID: 11, ServerName: "web-02"},
		},
		ServerIDs: []int64{10, 11},
		Duration:  "6 months",
	}}}
	svc := NewProjectService(stub, zaptest.NewLogger(t))

	projects, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "Storefront", p.Name)
	assert.Equal(t, []string{"10", "11"}, p.ServerIDs)
}

func TestProjectListFallsBackToBareIDs(t *testing.T) {
	stub := &projectAPIStub{projects: []ports.ProjectDTO{{
		ID: 2, ProjectName: "Data Platform", ServerIDs: []int64{20},
	}}}
	svc := NewProjectService(stub, zaptest.NewLogger(t))

	projects, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"20"}, projects[0].ServerIDs)
}

func TestProjectStatusDefaultsToPlanned(t *testing.T) {
	stub := &projectAPIStub{projects: []ports.ProjectDTO{{ID: 1, ProjectName: "x", Status: "NONSENSE"}}}
	svc := NewProjectService(stub, zaptest.NewLogger(t))

	projects, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectPlanned, projects[0].Status)
}

func TestProjectCreateDropsUnparsableServerIDs(t *testing.T) {
	stub := &projectAPIStub{}
	svc := NewProjectService(stub, zaptest.NewLogger(t))

	_, err := svc.Create(context.Background(), domain.ProjectInput{
		Name:      "Storefront",
		Status:    domain.ProjectActive,
		ServerIDs: []string{"10", "not-a-number", "11"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, stub.created.ServerIDs)
	assert.Equal(t, "ACTIVE", stub.created.Status)
}
