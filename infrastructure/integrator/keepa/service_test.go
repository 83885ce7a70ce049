package keepa

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	keepadomain "github.com/Adrian140/Stockmind/infrastructure/integrator/keepa/domain"
	"github.com/Adrian140/Stockmind/infrastructure/integrator/keepa/mocks"
	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/internal/domain"
)

func TestDomainID(t *testing.T) {
	assert.Equal(t, 1, DomainID("US"))
	assert.Equal(t, 2, DomainID("uk"))
	assert.Equal(t, 3, DomainID("DE"))
	assert.Equal(t, 11, DomainID("MX"))
	assert.Equal(t, 3, DomainID("PL"))
	assert.Equal(t, 3, DomainID(""))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "https://images-na.ssl-images-amazon.com/images/I/abc.jpg", ImageURL("abc.jpg,def.jpg"))
	assert.Equal(t, "https://cdn/x.jpg", ImageURL("https://cdn/x.jpg"))
	assert.Equal(t, "", ImageURL(""))
	assert.Equal(t, "", ImageURL(" ,def.jpg"))
}

func TestKeepaService_LookupImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	cfg := &config.Config{Keepa: config.Keepa{SafetyRemaining: 5}}
	service := New(cfg, mockClient)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, lookup *keepadomain.ImageLookup, err error)
	}{
		{
			name: "Imagem encontrada no domínio do marketplace",
			setup: func() {
				mockClient.EXPECT().
					GetProduct(gomock.Any(), "k1", "B001", 4).
					Return(&keepadomain.ProductResponse{TokensLeft: 50, Products: []keepadomain.Product{{ASIN: "B001", ImagesCSV: "abc.jpg"}}}, nil)
			},
			validate: func(t *testing.T, lookup *keepadomain.ImageLookup, err error) {
				require.NoError(t, err)
				assert.True(t, lookup.Found())
				assert.Equal(t, "https://images-na.ssl-images-amazon.com/images/I/abc.jpg", lookup.ImageURL)
			},
		},
		{
			name: "Produto sem imagem",
			setup: func() {
				mockClient.EXPECT().
					GetProduct(gomock.Any(), "k1", "B001", 4).
					Return(&keepadomain.ProductResponse{TokensLeft: 50, Products: []keepadomain.Product{{ASIN: "B001"}}}, nil)
			},
			validate: func(t *testing.T, lookup *keepadomain.ImageLookup, err error) {
				require.NoError(t, err)
				assert.False(t, lookup.Found())
			},
		},
		{
			name: "Saldo no limite de segurança",
			setup: func() {
				mockClient.EXPECT().
					GetProduct(gomock.Any(), "k1", "B001", 4).
					Return(&keepadomain.ProductResponse{TokensLeft: 5, Products: []keepadomain.Product{{ASIN: "B001", ImagesCSV: "abc.jpg"}}}, nil)
			},
			validate: func(t *testing.T, lookup *keepadomain.ImageLookup, err error) {
				assert.Nil(t, lookup)
				assert.ErrorIs(t, err, domain.ErrQuotaExhausted)
			},
		},
		{
			name: "Resposta 429",
			setup: func() {
				mockClient.EXPECT().
					GetProduct(gomock.Any(), "k1", "B001", 4).
					Return(nil, &keepadomain.APIError{StatusCode: 429, Body: "limit"})
			},
			validate: func(t *testing.T, lookup *keepadomain.ImageLookup, err error) {
				assert.ErrorIs(t, err, domain.ErrQuotaExhausted)
			},
		},
		{
			name: "Outro erro não é de cota",
			setup: func() {
				mockClient.EXPECT().
					GetProduct(gomock.Any(), "k1", "B001", 4).
					Return(nil, &keepadomain.APIError{StatusCode: 500, Body: "boom"})
			},
			validate: func(t *testing.T, lookup *keepadomain.ImageLookup, err error) {
				require.Error(t, err)
				assert.False(t, errors.Is(err, domain.ErrQuotaExhausted))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			lookup, err := service.LookupImage(context.Background(), "k1", "B001", "FR")
			tt.validate(t, lookup, err)
		})
	}
}
