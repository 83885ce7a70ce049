package sellerboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Adrian140/Stockmind/infrastructure/integrator/sellerboard/mocks"
	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/internal/domain"
)

func TestSellerboardService_FetchDailyReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := New(&config.Config{}, mockClient)
	source := config.MarketSource{Code: "DE", URL: "https://sellerboard/de.csv"}

	t.Run("Interpreta o CSV baixado", func(t *testing.T) {
		mockClient.EXPECT().
			FetchCSV(gomock.Any(), source.URL).
			Return("ASIN;SKU\nB001;SKU1\n", nil)

		table, err := service.FetchDailyReport(context.Background(), source)
		require.NoError(t, err)
		assert.Equal(t, ';', table.Delimiter)
		assert.Len(t, table.Records, 1)
	})

	t.Run("Erro de download mantém o marketplace", func(t *testing.T) {
		mockClient.EXPECT().
			FetchCSV(gomock.Any(), source.URL).
			Return("", domain.ErrSourceFetch)

		_, err := service.FetchDailyReport(context.Background(), source)
		var syncErr *domain.SyncError
		require.True(t, errors.As(err, &syncErr))
		assert.Equal(t, "DE", syncErr.Marketplace)
		assert.ErrorIs(t, err, domain.ErrSourceFetch)
	})

	t.Run("Resposta vazia retorna tabela vazia", func(t *testing.T) {
		mockClient.EXPECT().
			FetchCSV(gomock.Any(), source.URL).
			Return("  \n", nil)

		table, err := service.FetchDailyReport(context.Background(), source)
		require.NoError(t, err)
		assert.Empty(t, table.Records)
	})
}

func TestSellerboardService_Sources(t *testing.T) {
	cfg := &config.Config{Sellerboard: config.Sellerboard{DailyURLs: map[string]string{"UK": "u", "BE": "b"}}}
	service := New(cfg, nil)

	sources := service.Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, "BE", sources[0].Code)
	assert.Equal(t, "UK", sources[1].Code)
}
