package aggregating

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Adrian140/Stockmind/infrastructure/repository/mocks"
	"github.com/Adrian140/Stockmind/internal/domain"
)

var (
	start = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
)

func sale(day int, marketplace, sku string, units int, revenue, profit float64) domain.DailySalesRecord {
	return domain.DailySalesRecord{
		ReportDate:   time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Marketplace:  marketplace,
		ASIN:         "B-" + sku,
		SKU:          sku,
		Title:        "Produto " + sku,
		UnitsTotal:   units,
		RevenueTotal: revenue,
		NetProfit:    profit,
	}
}

func stringPtr(s string) *string {
	return &s
}

func TestVolatility(t *testing.T) {
	assert.Equal(t, 0.0, Volatility(0, 0, 0))
	assert.Equal(t, 0.0, Volatility(0, 0, 3))
	assert.Equal(t, 0.0, Volatility(6, 12, 3))                 // 2, 2, 2
	assert.InDelta(t, math.Sqrt(2), Volatility(3, 9, 3), 1e-9) // 3, 0, 0
}

func TestService_Aggregate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		params   AggregateParams
		setup    func(repo *mocks.MockDailySalesRepository)
		validate func(t *testing.T, result map[domain.ProductKey]*domain.ProductMetrics, err error)
	}{
		{
			name:   "Unidades constantes têm volatilidade zero",
			params: AggregateParams{OwnerID: "owner", Start: start, End: end, Marketplace: stringPtr("de")},
			setup: func(repo *mocks.MockDailySalesRepository) {
				repo.EXPECT().
					ListRange(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter domain.DailySalesFilter) ([]domain.DailySalesRecord, error) {
						require.NotNil(t, filter.Marketplace)
						assert.Equal(t, "DE", *filter.Marketplace)
						assert.Equal(t, uint64(PageSize), filter.Limit)
						return []domain.DailySalesRecord{
							sale(1, "DE", "A", 2, 20, 4),
							sale(2, "DE", "A", 2, 20, 4),
							sale(3, "DE", "A", 2, 20, 4),
						}, nil
					})
			},
			validate: func(t *testing.T, result map[domain.ProductKey]*domain.ProductMetrics, err error) {
				require.NoError(t, err)
				m := result[domain.ProductKey{Identity: "A", Marketplace: "DE"}]
				require.NotNil(t, m)
				assert.Equal(t, 6, m.UnitsTotal)
				assert.Equal(t, 60.0, m.RevenueTotal)
				assert.Equal(t, 12.0, m.ProfitTotal)
				assert.Equal(t, 2.0, m.ProfitUnit)
				assert.Equal(t, 3, m.Days)
				assert.Equal(t, 0.0, m.Volatility)
				assert.Equal(t, "B-A", m.ASIN)
			},
		},
		{
			name:   "Um único dia com vendas tem volatilidade positiva",
			params: AggregateParams{OwnerID: "owner", Start: start, End: end},
			setup: func(repo *mocks.MockDailySalesRepository) {
				repo.EXPECT().
					ListRange(gomock.Any(), gomock.Any()).
					Return([]domain.DailySalesRecord{
						sale(1, "DE", "A", 3, 30, 3),
						sale(2, "DE", "A", 0, 0, 0),
						sale(3, "DE", "A", 0, 0, 0),
					}, nil)
			},
			validate: func(t *testing.T, result map[domain.ProductKey]*domain.ProductMetrics, err error) {
				require.NoError(t, err)
				m := result[domain.ProductKey{Identity: "A", Marketplace: "DE"}]
				require.NotNil(t, m)
				assert.Greater(t, m.Volatility, 0.0)
			},
		},
		{
			name:   "Dias sem registro contam como zero unidades",
			params: AggregateParams{OwnerID: "owner", Start: start, End: end},
			setup: func(repo *mocks.MockDailySalesRepository) {
				repo.EXPECT().
					ListRange(gomock.Any(), gomock.Any()).
					Return([]domain.DailySalesRecord{sale(2, "DE", "A", 3, 30, 3)}, nil)
			},
			validate: func(t *testing.T, result map[domain.ProductKey]*domain.ProductMetrics, err error) {
				require.NoError(t, err)
				m := result[domain.ProductKey{Identity: "A", Marketplace: "DE"}]
				require.NotNil(t, m)
				assert.Equal(t, 1, m.Days)
				assert.InDelta(t, math.Sqrt(2), m.Volatility, 1e-9) // 0, 3, 0
			},
		},
		{
			name:   "Um dia de intervalo com uma venda",
			params: AggregateParams{OwnerID: "owner", Start: start, End: start},
			setup: func(repo *mocks.MockDailySalesRepository) {
				repo.EXPECT().
					ListRange(gomock.Any(), gomock.Any()).
					Return([]domain.DailySalesRecord{sale(1, "DE", "A", 3, 30, 3)}, nil)
			},
			validate: func(t *testing.T, result map[domain.ProductKey]*domain.ProductMetrics, err error) {
				require.NoError(t, err)
				m := result[domain.ProductKey{Identity: "A", Marketplace: "DE"}]
				require.NotNil(t, m)
				assert.Equal(t, 0.0, m.Volatility)
			},
		},
		{
			name:   "Todos os marketplaces somam e usam a maior volatilidade",
			params: AggregateParams{OwnerID: "owner", Start: start, End: end, Marketplace: stringPtr("ALL")},
			setup: func(repo *mocks.MockDailySalesRepository) {
				repo.EXPECT().
					ListRange(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter domain.DailySalesFilter) ([]domain.DailySalesRecord, error) {
						assert.Nil(t, filter.Marketplace)
						return []domain.DailySalesRecord{
							sale(1, "DE", "A", 2, 20, 2),
							sale(2, "DE", "A", 2, 20, 2),
							sale(1, "FR", "A", 3, 30, 3),
							sale(2, "FR", "A", 0, 0, 0),
							sale(1, "FR", "B", 1, 10, 1),
						}, nil
					})
			},
			validate: func(t *testing.T, result map[domain.ProductKey]*domain.ProductMetrics, err error) {
				require.NoError(t, err)
				require.Len(t, result, 2)

				a := result[domain.ProductKey{Identity: "A", Marketplace: domain.AllMarketplaces}]
				require.NotNil(t, a)
				assert.Equal(t, 7, a.UnitsTotal)
				assert.Equal(t, 70.0, a.RevenueTotal)
				assert.Equal(t, 7.0, a.ProfitTotal)
				assert.Equal(t, 4, a.Days)
				assert.InDelta(t, math.Sqrt(2), a.Volatility, 1e-9) // FR: 3, 0, 0 supera DE: 2, 2, 0
				assert.Equal(t, domain.AllMarketplaces, a.Marketplace)
			},
		},
		{
			name:   "Lê páginas até encontrar uma página incompleta",
			params: AggregateParams{OwnerID: "owner", Start: start, End: end},
			setup: func(repo *mocks.MockDailySalesRepository) {
				full := make([]domain.DailySalesRecord, PageSize)
				for i := range full {
					full[i] = sale(1, "DE", "A", 1, 1, 0)
				}
				gomock.InOrder(
					repo.EXPECT().
						ListRange(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, filter domain.DailySalesFilter) ([]domain.DailySalesRecord, error) {
							assert.Equal(t, uint64(0), filter.Offset)
							return full, nil
						}),
					repo.EXPECT().
						ListRange(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, filter domain.DailySalesFilter) ([]domain.DailySalesRecord, error) {
							assert.Equal(t, uint64(PageSize), filter.Offset)
							return []domain.DailySalesRecord{sale(2, "DE", "A", 1, 1, 0)}, nil
						}),
				)
			},
			validate: func(t *testing.T, result map[domain.ProductKey]*domain.ProductMetrics, err error) {
				require.NoError(t, err)
				m := result[domain.ProductKey{Identity: "A", Marketplace: "DE"}]
				require.NotNil(t, m)
				assert.Equal(t, PageSize+1, m.UnitsTotal)
			},
		},
		{
			name:   "Intervalo invertido",
			params: AggregateParams{OwnerID: "owner", Start: end, End: start},
			setup:  func(repo *mocks.MockDailySalesRepository) {},
			validate: func(t *testing.T, result map[domain.ProductKey]*domain.ProductMetrics, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidRange)
			},
		},
		{
			name:   "Sem dono",
			params: AggregateParams{Start: start, End: end},
			setup:  func(repo *mocks.MockDailySalesRepository) {},
			validate: func(t *testing.T, result map[domain.ProductKey]*domain.ProductMetrics, err error) {
				assert.ErrorIs(t, err, domain.ErrOwnerRequired)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockDailySalesRepository(ctrl)
			tt.setup(repo)

			service := NewAggregatorService(repo)
			result, err := service.Aggregate(ctx, tt.params)
			tt.validate(t, result, err)
		})
	}
}

func TestSorted(t *testing.T) {
	groups := map[domain.ProductKey]*domain.ProductMetrics{
		{Identity: "B", Marketplace: "DE"}: {Identity: "B", Marketplace: "DE", UnitsTotal: 5},
		{Identity: "A", Marketplace: "FR"}: {Identity: "A", Marketplace: "FR", UnitsTotal: 5},
		{Identity: "C", Marketplace: "DE"}: {Identity: "C", Marketplace: "DE", UnitsTotal: 9},
	}

	sorted := Sorted(groups)

	require.Len(t, sorted, 3)
	assert.Equal(t, "C", sorted[0].Identity)
	assert.Equal(t, "A", sorted[1].Identity)
	assert.Equal(t, "B", sorted[2].Identity)
}
