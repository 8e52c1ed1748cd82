package cli

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equipment-tracker/internal/api"
	"equipment-tracker/internal/db"
	"equipment-tracker/internal/store"
)

var dbSeq atomic.Int64

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:cli_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(testDB))
	sqlDB, _ := testDB.DB()

	server := httptest.NewServer(api.NewRouter(store.NewGormStore(testDB), api.RouterOptions{}))
	t.Cleanup(func() {
		server.Close()
		sqlDB.Close()
	})
	return server
}

func execute(t *testing.T, serverURL string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--server", serverURL}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLI_AddListEditDelete(t *testing.T) {
	server := newServer(t)

	out, _, err := execute(t, server.URL, "add", "--name", "Mixer-1", "--type", "Mixer", "--status", "Active", "--last-cleaned", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "Added equipment 1 (Mixer-1)\n", out)

	_, _, err = execute(t, server.URL, "add", "--name", "Tank-2", "--type", "Tank", "--status", "Inactive")
	require.NoError(t, err)

	out, _, err = execute(t, server.URL, "list", "--sort", "name", "--desc")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Name↓")
	assert.Contains(t, lines[1], "Tank-2")
	assert.Contains(t, lines[2], "2024-01-15")

	out, _, err = execute(t, server.URL, "list", "--search", "MIX")
	require.NoError(t, err)
	assert.Contains(t, out, "Mixer-1")
	assert.NotContains(t, out, "Tank-2")

	out, _, err = execute(t, server.URL, "edit", "1", "--status", "Under Maintenance")
	require.NoError(t, err)
	assert.Equal(t, "Updated equipment 1 (Mixer-1, Under Maintenance)\n", out)

	// The edit kept the date that was not passed on the command line.
	out, _, err = execute(t, server.URL, "list", "--search", "maintenance")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-15")

	out, _, err = execute(t, server.URL, "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted equipment 1\n", out)

	out, _, err = execute(t, server.URL, "list", "--search", "mixer")
	require.NoError(t, err)
	assert.Equal(t, "No matching equipment found\n", out)
}

func TestCLI_AddReportsFieldErrors(t *testing.T) {
	server := newServer(t)

	_, errOut, err := execute(t, server.URL, "add", "--name", " ", "--type", "Rocket")
	require.Error(t, err)
	assert.Contains(t, errOut, "name: Name is required")
	assert.Contains(t, errOut, "type: Type must be one of Machine, Vessel, Tank, Mixer")
	assert.Contains(t, errOut, "status: Status is required")

	out, _, err := execute(t, server.URL, "list")
	require.NoError(t, err)
	assert.Equal(t, "No equipment available\n", out)
}

func TestCLI_DeleteUnknownShowsBanner(t *testing.T) {
	server := newServer(t)

	_, errOut, err := execute(t, server.URL, "delete", "77")
	require.Error(t, err)
	assert.Equal(t, "Error: Failed to delete equipment\n", errOut)
}

func TestCLI_ListBadSortColumn(t *testing.T) {
	server := newServer(t)
	_, _, err := execute(t, server.URL, "list", "--sort", "colour")
	assert.Error(t, err)
}
