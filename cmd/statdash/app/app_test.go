package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/utils"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	st, closeFn, err := openStore(ctx, config.StoreConfig{Backend: config.StoreBackendMemory, DataTable: "Data", CatalogTable: "Konfig"})
	require.NoError(t, err)
	defer closeFn()

	headers, err := st.LoadHeaders(ctx, "Konfig")
	require.NoError(t, err)
	assert.Contains(t, headers, "ShowOnHome")

	_, _, err = openStore(ctx, config.StoreConfig{Backend: config.StoreBackendPostgres})
	assert.ErrorIs(t, err, constants.ErrConfigurationMissing)

	_, _, err = openStore(ctx, config.StoreConfig{Backend: config.StoreBackendSheets})
	assert.ErrorIs(t, err, constants.ErrConfigurationMissing)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("STATDASH_BPS_API_KEY", "k")
	t.Setenv("STATDASH_HTTP_ADMIN_SECRET", "s3cret")

	out, err := execute(t, "token", "--name", "ops")
	require.NoError(t, err)

	claims, err := utils.ParseAuthToken(strings.TrimSpace(out), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Admin)
}

func TestTokenCommandWithoutSecret(t *testing.T) {
	t.Setenv("STATDASH_BPS_API_KEY", "k")
	t.Setenv("STATDASH_HTTP_ADMIN_SECRET", "")

	_, err := execute(t, "token")
	assert.ErrorIs(t, err, constants.ErrConfigurationMissing)
}

func TestSyncCommandEmptyCatalog(t *testing.T) {
	t.Setenv("STATDASH_BPS_API_KEY", "k")
	t.Setenv("STATDASH_STORE_BACKEND", config.StoreBackendMemory)

	out, err := execute(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "done: 0/0 indicators")
}

func TestMigrateNeedsPostgres(t *testing.T) {
	t.Setenv("STATDASH_BPS_API_KEY", "k")
	t.Setenv("STATDASH_STORE_BACKEND", config.StoreBackendMemory)

	_, err := execute(t, "migrate")
	assert.ErrorIs(t, err, constants.ErrConfigurationMissing)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "statdash dev"))
}
