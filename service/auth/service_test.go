package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

func newTestGate(t *testing.T) (Gate, map[Role]string) {
	t.Helper()
	dir := t.TempDir()
	paths := map[Role]string{
		RoleCashier: filepath.Join(dir, "password.txt"),
		RoleChef:    filepath.Join(dir, "chef_password.txt"),
	}
	g, err := NewFileGate(paths, zerolog.Nop())
	require.NoError(t, err)
	return g, paths
}

func Test_NewFileGate_SeedsDefault(t *testing.T) {
	g, paths := newTestGate(t)

	raw, err := os.ReadFile(paths[RoleCashier])
	require.NoError(t, err)
	assert.Equal(t, DefaultPassword, string(raw))

	assert.True(t, g.Verify(RoleCashier, "123"))
	assert.True(t, g.Verify(RoleChef, "123"))
	assert.False(t, g.Verify(RoleCashier, "1234"))
}

func Test_Required(t *testing.T) {
	g, _ := newTestGate(t)
	assert.True(t, g.Required(RoleCashier))
	assert.False(t, g.Required(RoleCustomer))
	assert.True(t, g.Verify(RoleCustomer, ""))
}

func Test_Change(t *testing.T) {
	g, paths := newTestGate(t)
	ctx := context.Background()

	assert.ErrorIs(t, g.Change(ctx, RoleChef, "wrong", "456"), model.ErrWrongPassword)
	assert.ErrorIs(t, g.Change(ctx, RoleChef, "123", ""), model.ErrEmptyPassword)
	require.NoError(t, g.Change(ctx, RoleChef, "123", "456"))

	assert.True(t, g.Verify(RoleChef, "456"))
	assert.True(t, g.Verify(RoleCashier, "123"), "roles are independent")

	reloaded, err := NewFileGate(paths, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, reloaded.Verify(RoleChef, "456"))
}

func Test_NewFileGate_ReadsFirstLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "password.txt")
	require.NoError(t, os.WriteFile(path, []byte("secret\nignored\n"), 0600))

	g, err := NewFileGate(map[Role]string{RoleCashier: path}, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, g.Verify(RoleCashier, "secret"))
}
