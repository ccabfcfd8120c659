package memory

import (
	"context"
	"testing"
	"time"

	"ai-helpdesk-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTenantRepo struct {
	projects  []*entity.ProjectAccess
	listCalls int
}

func (r *stubTenantRepo) FindEmployeeByChatId(context.Context, string) (*entity.Employee, error) {
	return nil, nil
}

func (r *stubTenantRepo) ClearChatBinding(context.Context, uint) error { return nil }

func (r *stubTenantRepo) HasActiveSubscription(context.Context, uint, time.Time) (bool, error) {
	return true, nil
}

func (r *stubTenantRepo) HasProjectAccess(context.Context, uint, string) (bool, error) {
	return true, nil
}

func (r *stubTenantRepo) ListProjects(context.Context, uint) ([]*entity.ProjectAccess, error) {
	r.listCalls++
	return r.projects, nil
}

func TestSnapshotMapsNamesToScopes(t *testing.T) {
	repo := &stubTenantRepo{
		projects: []*entity.ProjectAccess{
			{DocId: "doc-1", DocName: "Payroll"},
			{DocId: "doc-2", DocName: ""}, // unnamed projects fall back to id
		},
	}
	d := NewDirectoryCache(repo, time.Minute)

	dir, err := d.Snapshot(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Payroll": "doc-1",
		"doc-2":   "doc-2",
	}, dir)
}

func TestSnapshotIsCachedPerTenant(t *testing.T) {
	repo := &stubTenantRepo{}
	d := NewDirectoryCache(repo, time.Minute)

	_, err := d.Snapshot(context.Background(), 1)
	require.NoError(t, err)
	_, err = d.Snapshot(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	_, err = d.Snapshot(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "tenants are cached independently")
}

func TestInvalidateForcesReload(t *testing.T) {
	repo := &stubTenantRepo{}
	d := NewDirectoryCache(repo, time.Minute)

	_, _ = d.Snapshot(context.Background(), 1)
	d.Invalidate(1)
	_, _ = d.Snapshot(context.Background(), 1)

	assert.Equal(t, 2, repo.listCalls)
}
