//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Adrian140/Stockmind/infrastructure/database/postgres"
	"github.com/Adrian140/Stockmind/infrastructure/migration"
	"github.com/Adrian140/Stockmind/internal/domain"
)

func setupTestDatabase(t *testing.T) *postgres.Connection {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("stockmind"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp").
					WithStartupTimeout(60*time.Second),
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := postgres.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migration.Apply(ctx, conn))

	return conn
}

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func TestRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("ignorando teste de integração no modo short")
	}

	ctx := context.Background()
	conn := setupTestDatabase(t)

	salesRepo := NewDailySalesRepository(conn)
	productRepo := NewProductRepository(conn)
	imageRepo := NewAsinImageRepository(conn)
	integrationRepo := NewIntegrationRepository(conn)

	cost := 2.5
	records := []domain.DailySalesRecord{
		{ReportDate: day("2024-03-15"), Marketplace: "DE", ASIN: "B001", SKU: "SKU1", Title: "Caneca", Category: "home", UnitsTotal: 5, RevenueTotal: 50, NetProfit: 10, CostOfGoods: &cost, Raw: []byte(`{"ASIN":"B001"}`)},
		{ReportDate: day("2024-03-15"), Marketplace: "FR", ASIN: "B001", SKU: "SKU1", Title: "Caneca", Category: "home", UnitsTotal: 2, RevenueTotal: 20},
		{ReportDate: day("2024-03-16"), Marketplace: "DE", ASIN: "B002", SKU: "SKU2", Title: "Prato", Category: "home", UnitsTotal: 1, RevenueTotal: 9.99},
	}

	t.Run("Upsert insere e ignora linhas idênticas", func(t *testing.T) {
		affected, err := salesRepo.UpsertBatch(ctx, "owner-1", records)
		require.NoError(t, err)
		assert.Equal(t, int64(3), affected)

		affected, err = salesRepo.UpsertBatch(ctx, "owner-1", records)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)

		changed := records[0]
		changed.UnitsTotal = 6
		affected, err = salesRepo.UpsertBatch(ctx, "owner-1", []domain.DailySalesRecord{changed})
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("Leitura por intervalo e marketplace", func(t *testing.T) {
		all, err := salesRepo.ListRange(ctx, domain.DailySalesFilter{OwnerID: "owner-1", StartDate: day("2024-03-01"), EndDate: day("2024-03-31")})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		de := "DE"
		page, err := salesRepo.ListRange(ctx, domain.DailySalesFilter{OwnerID: "owner-1", StartDate: day("2024-03-01"), EndDate: day("2024-03-31"), Marketplace: &de, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "SKU1", page[0].SKU)
		assert.Equal(t, 6, page[0].UnitsTotal)
		require.NotNil(t, page[0].CostOfGoods)
		assert.InDelta(t, 2.5, *page[0].CostOfGoods, 1e-9)
	})

	t.Run("Atualização de produtos e backlog de imagens", func(t *testing.T) {
		refreshed, err := productRepo.RefreshFromDailySKUs(ctx, "owner-1", []string{"SKU1", "SKU2"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, refreshed)

		candidates, err := productRepo.ListMissingImages(ctx, "owner-1", 10)
		require.NoError(t, err)
		assert.Len(t, candidates, 3)

		updated, err := productRepo.ApplyImage(ctx, "owner-1", "B001", "https://img/b001.jpg")
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated)

		candidates, err = productRepo.ListMissingImages(ctx, "", 10)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "B002", candidates[0].ASIN)
	})

	t.Run("Cache de imagens por ASIN", func(t *testing.T) {
		entry, err := imageRepo.Get(ctx, "owner-1", "B009")
		require.NoError(t, err)
		assert.Nil(t, entry)

		require.NoError(t, imageRepo.Save(ctx, domain.AsinImageCacheEntry{OwnerID: "owner-1", ASIN: "B009", ImageURL: "https://img/b009.jpg", Source: domain.AsinImageSourceKeepa}))

		entry, err = imageRepo.Get(ctx, "owner-1", "B009")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "https://img/b009.jpg", entry.ImageURL)
		assert.Equal(t, domain.AsinImageSourceKeepa, entry.Source)
	})

	t.Run("Chaves do Keepa por dono", func(t *testing.T) {
		_, err := conn.ExecContext(ctx, `INSERT INTO integrations (owner_id, keepa_api_key) VALUES ('owner-1', 'key-1'), ('owner-2', NULL)`)
		require.NoError(t, err)

		keys, err := integrationRepo.ListKeepaKeys(ctx, []string{"owner-1", "owner-2", "owner-3"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"owner-1": "key-1"}, keys)
	})
}
