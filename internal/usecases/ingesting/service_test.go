package ingesting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Adrian140/Stockmind/infrastructure/repository/mocks"
	"github.com/Adrian140/Stockmind/internal/domain"
)

func record(day int, marketplace, sku string, units int) domain.DailySalesRecord {
	return domain.DailySalesRecord{
		ReportDate:  time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Marketplace: marketplace,
		ASIN:        "B" + sku,
		SKU:         sku,
		UnitsTotal:  units,
	}
}

func TestDedupe(t *testing.T) {
	records := []domain.DailySalesRecord{
		record(1, "DE", "A", 1),
		record(1, "DE", "A", 9),
		record(1, "FR", "A", 2),
		record(2, "DE", "A", 3),
		record(1, "DE", "B", 4),
	}

	unique := Dedupe(records)

	require.Len(t, unique, 4)
	assert.Equal(t, 1, unique[0].UnitsTotal) // a primeira ocorrência vence
	assert.Equal(t, "FR", unique[1].Marketplace)
}

func TestCollectSKUs(t *testing.T) {
	records := []domain.DailySalesRecord{
		record(1, "DE", "Z", 1),
		record(1, "FR", "A", 1),
		record(2, "DE", "Z", 1),
		record(2, "DE", " ", 1),
	}

	assert.Equal(t, []string{"A", "Z"}, CollectSKUs(records))
}

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		ownerID   string
		records   []domain.DailySalesRecord
		batchSize int
		setup     func(repo *mocks.MockDailySalesRepository)
		expected  int64
		wantErr   error
	}{
		{
			name:    "Sem registros não grava nada",
			ownerID: "owner",
			setup:   func(repo *mocks.MockDailySalesRepository) {},
		},
		{
			name:    "Sem dono não grava nada",
			records: []domain.DailySalesRecord{record(1, "DE", "A", 1)},
			setup:   func(repo *mocks.MockDailySalesRepository) {},
		},
		{
			name:      "Divide em lotes e soma as linhas afetadas",
			ownerID:   "owner",
			records:   []domain.DailySalesRecord{record(1, "DE", "A", 1), record(1, "DE", "B", 1), record(1, "DE", "C", 1)},
			batchSize: 2,
			setup: func(repo *mocks.MockDailySalesRepository) {
				gomock.InOrder(
					repo.EXPECT().
						UpsertBatch(gomock.Any(), "owner", gomock.Len(2)).
						Return(int64(2), nil),
					repo.EXPECT().
						UpsertBatch(gomock.Any(), "owner", gomock.Len(1)).
						Return(int64(0), nil),
				)
			},
			expected: 2,
		},
		{
			name:    "Duplicados são removidos antes da gravação",
			ownerID: "owner",
			records: []domain.DailySalesRecord{record(1, "DE", "A", 1), record(1, "DE", "A", 5)},
			setup: func(repo *mocks.MockDailySalesRepository) {
				repo.EXPECT().
					UpsertBatch(gomock.Any(), "owner", gomock.Len(1)).
					Return(int64(1), nil)
			},
			expected: 1,
		},
		{
			name:      "Erro no segundo lote interrompe e mantém o total parcial",
			ownerID:   "owner",
			records:   []domain.DailySalesRecord{record(1, "DE", "A", 1), record(1, "DE", "B", 1), record(1, "DE", "C", 1), record(1, "DE", "D", 1), record(1, "DE", "E", 1)},
			batchSize: 2,
			setup: func(repo *mocks.MockDailySalesRepository) {
				gomock.InOrder(
					repo.EXPECT().
						UpsertBatch(gomock.Any(), "owner", gomock.Any()).
						Return(int64(2), nil),
					repo.EXPECT().
						UpsertBatch(gomock.Any(), "owner", gomock.Any()).
						Return(int64(0), errors.New("conexão perdida")),
				)
			},
			expected: 2,
			wantErr:  domain.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockDailySalesRepository(ctrl)
			tt.setup(repo)

			service := NewService(repo, mocks.NewMockProductRepository(ctrl))
			total, err := service.Upsert(ctx, tt.ownerID, tt.records, tt.batchSize)

			assert.Equal(t, tt.expected, total)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "lote 2-4")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestService_ImportFile(t *testing.T) {
	ctx := context.Background()

	t.Run("Resumo com intervalo no nome do arquivo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		salesRepo := mocks.NewMockDailySalesRepository(ctrl)
		productRepo := mocks.NewMockProductRepository(ctrl)

		salesRepo.EXPECT().
			UpsertBatch(gomock.Any(), "owner", gomock.Len(6)).
			DoAndReturn(func(_ context.Context, _ string, records []domain.DailySalesRecord) (int64, error) {
				for _, r := range records {
					assert.Equal(t, "IT", r.Marketplace)
				}
				return int64(len(records)), nil
			})
		productRepo.EXPECT().
			RefreshFromDailySKUs(gomock.Any(), "owner", []string{"SKU1", "SKU2"}, nil).
			Return(2, nil)

		csv := "ASIN,SKU,Units,Sales\nB001,SKU1,10,\"100,00\"\nB002,SKU2,3,30\n,SKU3,1,1\n"
		service := NewService(salesRepo, productRepo)

		report, err := service.ImportFile(ctx, ImportRequest{
			OwnerID:     "owner",
			Filename:    "Dashboard 01_03_2024-03_03_2024.csv",
			Reader:      strings.NewReader(csv),
			Marketplace: "amazon.it",
		})

		require.NoError(t, err)
		assert.Equal(t, "summary", report.Schema)
		assert.Equal(t, 3, report.Rows)
		assert.Equal(t, 6, report.Records)
		assert.Equal(t, int64(6), report.Imported)
		assert.Equal(t, 2, report.RefreshedSKU)
		assert.Equal(t, "2024-03-01", report.Start)
		assert.Equal(t, "2024-03-03", report.End)
		assert.Equal(t, map[string]int{"missing_asin": 1}, report.Dropped)
	})

	t.Run("Resumo sem intervalo retorna erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(mocks.NewMockDailySalesRepository(ctrl), mocks.NewMockProductRepository(ctrl))

		_, err := service.ImportFile(ctx, ImportRequest{
			OwnerID:  "owner",
			Filename: "export.csv",
			Reader:   strings.NewReader("ASIN,SKU,Units\nB001,SKU1,10\n"),
		})

		assert.ErrorIs(t, err, domain.ErrMissingDateRange)
	})

	t.Run("Sem dono", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(mocks.NewMockDailySalesRepository(ctrl), mocks.NewMockProductRepository(ctrl))

		_, err := service.ImportFile(ctx, ImportRequest{Filename: "x.csv", Reader: strings.NewReader("")})
		assert.ErrorIs(t, err, domain.ErrOwnerRequired)
	})

	t.Run("Nada gravado não atualiza produtos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		salesRepo := mocks.NewMockDailySalesRepository(ctrl)
		salesRepo.EXPECT().
			UpsertBatch(gomock.Any(), "owner", gomock.Len(1)).
			Return(int64(0), nil)

		service := NewService(salesRepo, mocks.NewMockProductRepository(ctrl))

		report, err := service.ImportFile(ctx, ImportRequest{
			OwnerID:  "owner",
			Filename: "daily.csv",
			Reader:   strings.NewReader("Date,ASIN,SKU,Marketplace,UnitsOrganic\n15/03/2024,B001,SKU1,DE,2\n"),
		})

		require.NoError(t, err)
		assert.Equal(t, "daily", report.Schema)
		assert.Equal(t, int64(0), report.Imported)
	})
}
