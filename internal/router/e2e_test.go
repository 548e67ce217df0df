//go:build integration

package router_test

// Runs the field survey flow against real Postgres and Redis.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soporte-code/API-PORTALWEB/internal/infra"
	"github.com/soporte-code/API-PORTALWEB/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestE2E_FlujoCatastroPostgresRedis(t *testing.T) {
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("portal_test"),
		tcPostgres.WithUsername("portal"),
		tcPostgres.WithPassword("portal"),
		testcontainers.WithWaitStrategy(tcPostgres.BasicWaitStrategies()...),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := infra.NewDatabase("postgres", pgURL, true)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(rdURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	ajeno := sembrar(t, db)

	cfg := testConfig()
	cfg.DBDriver = "postgres"
	cfg.DatabaseURL = pgURL
	cfg.RedisURL = rdURL
	cfg.ScopeCacheTTLSeconds = 60

	srv := httptest.NewServer(router.New(cfg, router.Infra{DB: db, Redis: rdb}))
	t.Cleanup(srv.Close)
	c := &cliente{t: t, base: srv.URL}

	flujoCatastro(t, c, ajeno)

	// the branch scope was cached on first use
	n, err := rdb.Exists(ctx, "alcance:u-1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	status, body := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "connected", body["redis"])
	assert.EqualValues(t, 0, body["dlq_notificaciones"])
}
