package mock

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostdeck/internal/core/ports"
)

var _ ports.AuthBackend = (*Backend)(nil)
var _ ports.APIBackend = (*Backend)(nil)

func TestSignInAcceptsAnyCredentials(t *testing.T) {
	b := NewBackend()

	res, err := b.SignIn(context.Background(), "somebody", "anything")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, []string{"ROLE_ADMIN"}, res.Roles)
	assert.Equal(t, "somebody@example.com", res.Email)
}

func TestSignInSeededRoles(t *testing.T) {
	b := NewBackend()

	res, err := b.SignIn(context.Background(), "operator", "pw")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_OPERATOR"}, res.Roles)

	res, err = b.SignIn(context.Background(), "viewer@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_USER"}, res.Roles)
}

func TestSignInRejectsEmptyCredentials(t *testing.T) {
	b := NewBackend()
	_, err := b.SignIn(context.Background(), "", "pw")
	assert.Error(t, err)
}

func TestSignUpDuplicates(t *testing.T) {
	b := NewBackend()
	ctx := context.Background()

	require.NoError(t, b.SignUp(ctx, "newuser", "new@example.com", "pw123456", ""))
	assert.Error(t, b.SignUp(ctx, "newuser", "other@example.com", "pw123456", ""))
	assert.Error(t, b.SignUp(ctx, "other", "new@example.com", "pw123456", ""))
}

func TestSignUpKeepsRequestedRole(t *testing.T) {
	b := NewBackend()
	ctx := context.Background()

	tests := []struct {
		username, role string
		wantRole       []string
	}{
		{"carol", "admin", []string{"ROLE_ADMIN"}},
		{"dave", "operator", []string{"ROLE_OPERATOR"}},
		{"erin", "viewer", []string{"ROLE_USER"}},
		{"frank", "", []string{"ROLE_USER"}},
	}
	for _, tt := range tests {
		require.NoError(t, b.SignUp(ctx, tt.username, tt.username+"@example.com", "pw123456", tt.role))

		res, err := b.SignIn(ctx, tt.username, "pw123456")
		require.NoError(t, err)
		assert.Equal(t, tt.wantRole, res.Roles, tt.username)
	}
}

func TestServerCRUD(t *testing.T) {
	b := NewBackend()
	ctx := context.Background()

	created, err := b.CreateServer(ctx, ports.ServerDTO{ServerName: "app-01", IPAddress: "10.1.0.5"})
	require.NoError(t, err)
	assert.Equal(t, "unknown", created.Status)

	updated, err := b.UpdateServer(ctx, itoa(created.ID), ports.ServerDTO{Status: "online"})
	require.NoError(t, err)
	assert.Equal(t, "online", updated.Status)
	assert.Equal(t, "app-01", updated.ServerName)

	require.NoError(t, b.DeleteServer(ctx, itoa(created.ID)))
	_, err = b.GetServer(ctx, itoa(created.ID))
	assert.Error(t, err)
}

func TestMetricsSeriesShape(t *testing.T) {
	b := NewBackend()

	samples, err := b.ListMetrics(context.Background(), "1", 10)
	require.NoError(t, err)
	require.Len(t, samples, 10)
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.CPUUsage, 1.0)
		assert.LessOrEqual(t, s.CPUUsage, 99.0)
	}
	// newest first
	assert.True(t, samples[0].CollectedAt.After(samples[9].CollectedAt))
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
