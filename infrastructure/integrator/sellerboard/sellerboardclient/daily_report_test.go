package sellerboardclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/internal/domain"
)

func TestFetchCSV(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		validate func(t *testing.T, body string, err error)
	}{
		{
			name: "Retorna o CSV e envia os cabeçalhos",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "text/csv", r.Header.Get("Accept"))
				assert.Equal(t, "StockmindDailySync/1.0", r.Header.Get("User-Agent"))
				w.Write([]byte("ASIN,SKU\nB001,SKU1\n"))
			},
			validate: func(t *testing.T, body string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "ASIN,SKU\nB001,SKU1\n", body)
			},
		},
		{
			name: "Status diferente de 200 vira ErrSourceFetch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("link expirado"))
			},
			validate: func(t *testing.T, body string, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrSourceFetch))
				assert.Contains(t, err.Error(), "403")
				assert.Contains(t, err.Error(), "link expirado")
				assert.Empty(t, body)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			cfg := &config.Config{Sellerboard: config.Sellerboard{UserAgent: "StockmindDailySync/1.0"}}
			client := NewClient(cfg)

			body, err := client.FetchCSV(context.Background(), server.URL)
			tt.validate(t, body, err)
		})
	}
}
