package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/internal/media"
	"github.com/mesh-intelligence/backoffice/internal/paths"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

type harness struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")
	t.Setenv("BACKOFFICE_SESSION_SECRET", "")
	return &harness{t: t, configDir: t.TempDir(), dataDir: t.TempDir()}
}

// run executes the CLI with the harness directories and returns stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", h.configDir, "--data-dir", h.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "args: %v", args)
	return out
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("version")
	assert.Contains(t, out, "backoffice v"+Version)
	assert.Contains(t, out, modulePath)

	_, err := os.Stat(paths.ConfigFile(h.configDir))
	assert.True(t, os.IsNotExist(err), "version must not write a config file")
}

func TestInit_WritesConfigAndDatabase(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("init")
	assert.Contains(t, out, "backoffice initialized successfully")

	s, err := loadSettings(h.configDir)
	require.NoError(t, err)
	assert.Equal(t, types.BackendSQLite, s.Backend)
	assert.Len(t, s.SessionSecret, 64)
	assert.Equal(t, ":8080", s.HTTP.Addr)
	assert.False(t, s.HTTP.TrustProxy)
	assert.True(t, s.Features.Reviews)
	assert.EqualValues(t, 5, s.LowStockThreshold)

	_, err = os.Stat(filepath.Join(h.dataDir, "backoffice.db"))
	assert.NoError(t, err)

	// A second init keeps the existing secret.
	h.mustRun("init")
	again, err := loadSettings(h.configDir)
	require.NoError(t, err)
	assert.Equal(t, s.SessionSecret, again.SessionSecret)
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	h := newHarness(t)
	_, err := writeDefaultConfig(h.configDir, "")
	require.NoError(t, err)

	t.Setenv("BACKOFFICE_HTTP_ADDR", "127.0.0.1:9999")
	s, err := loadSettings(h.configDir)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", s.HTTP.Addr)
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	h := newHarness(t)
	s, err := loadSettings(h.configDir)
	require.NoError(t, err)
	assert.Equal(t, defaultSettings().PageSize, s.PageSize)
	assert.Equal(t, string(media.DriverFilesystem), s.Media.Driver)
}

func TestAdminAddLoginAndList(t *testing.T) {
	h := newHarness(t)
	h.mustRun("init")

	out := h.mustRun("admin", "add", "--email", "Ayse@Example.com", "--password", "gizli", "--role", "super_admin")
	assert.Contains(t, out, "created ayse (ayse@example.com) as super_admin")

	out = h.mustRun("admin", "login", "--email", "ayse@example.com", "--password", "gizli")
	assert.Contains(t, out, "signed in as ayse")

	_, err := h.run("admin", "login", "--email", "ayse@example.com", "--password", "yanlis")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	var logs struct {
		Items []types.LoginLog `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("--json", "list", "login-logs")), &logs))
	require.Len(t, logs.Items, 2)

	var admins struct {
		Items      []types.AdminUser `json:"items"`
		Pagination pageInfo          `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("--json", "list", "admin-users", "--search", "AYSE")), &admins))
	require.Len(t, admins.Items, 1)
	assert.Equal(t, 1, admins.Pagination.TotalItems)
	assert.NotNil(t, admins.Items[0].LastLogin)
}

func TestAdminAdd_RejectsInvalidRole(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("admin", "add", "--email", "x@example.com", "--role", "owner")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestGetAndDelete(t *testing.T) {
	h := newHarness(t)
	h.mustRun("init")
	var u types.AdminUser
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("--json", "admin", "add", "--email", "editor@example.com")), &u))

	out := h.mustRun("get", "admin-users", u.ID)
	assert.Contains(t, out, "editor@example.com")

	out = h.mustRun("delete", "admin-users", u.ID)
	assert.Contains(t, out, "deleted admin-users "+u.ID)

	_, err := h.run("get", "admin-users", u.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestStatusAndDelete_ReflectOnPage(t *testing.T) {
	h := newHarness(t)
	h.mustRun("init")
	var a, b types.AdminUser
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("--json", "admin", "add", "--email", "a@example.com")), &a))
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("--json", "admin", "add", "--email", "b@example.com")), &b))

	out := h.mustRun("status", "admin-users", a.ID, "inactive")
	assert.Contains(t, out, "admin-users "+a.ID+" is now inactive")
	assert.Contains(t, out, "page 1 of 1 (2 items)")

	var got types.AdminUser
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("--json", "status", "admin-users", a.ID, "active")), &got))
	assert.Equal(t, types.StatusActive, got.Status)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown status", []string{"status", "admin-users", a.ID, "asleep"}, types.ErrInvalidStatus},
		{"product flag", []string{"status", "products", a.ID, "asleep"}, types.ErrInvalidStatus},
		{"missing record", []string{"delete", "admin-users", "0196a3c2-7b10-7c3e-9a51-2f4d8e6b1a01"}, types.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.run(tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}

	out = h.mustRun("delete", "admin-users", b.ID)
	assert.Contains(t, out, "deleted admin-users "+b.ID)
	assert.Contains(t, out, "page 1 of 1 (1 items)")
	assert.NotContains(t, out, "b@example.com")

	_, err := h.run("status", "showcases", a.ID, "active")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no status")
}

func TestList_TableOutput(t *testing.T) {
	h := newHarness(t)
	h.mustRun("init")

	out := h.mustRun("list", "legal-texts", "--per-page", "2")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "page 1 of")

	out = h.mustRun("list", "products")
	assert.Contains(t, out, "(0 rows)")
}

func TestUnknownResource(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("list", "widgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown resource "widgets"`)
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = h.run("delete", "orders", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be deleted")
}

func TestMigrate(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("migrate")
	assert.Contains(t, out, "sqlite schema at version")
}
