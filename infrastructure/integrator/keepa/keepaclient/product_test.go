package keepaclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keepadomain "github.com/Adrian140/Stockmind/infrastructure/integrator/keepa/domain"
	"github.com/Adrian140/Stockmind/internal/config"
)

func newTestClient(url string) Client {
	return NewClient(&config.Config{Keepa: config.Keepa{URL: url}})
}

func TestGetProduct(t *testing.T) {
	t.Run("Envia os parâmetros e decodifica a resposta", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/product", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "k1", q.Get("key"))
			assert.Equal(t, "3", q.Get("domain"))
			assert.Equal(t, "B001", q.Get("asin"))
			assert.Equal(t, "0", q.Get("stats"))
			assert.Equal(t, "0", q.Get("history"))

			w.Write([]byte(`{"tokensLeft": 42, "refillIn": 1000, "refillRate": 5, "products": [{"asin": "B001", "imagesCSV": "abc.jpg,def.jpg"}]}`))
		}))
		defer server.Close()

		resp, err := newTestClient(server.URL).GetProduct(context.Background(), "k1", "B001", 3)
		require.NoError(t, err)
		assert.Equal(t, 42, resp.TokensLeft)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "abc.jpg,def.jpg", resp.Products[0].ImagesCSV)
	})

	t.Run("Status 429 retorna APIError com limite", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": "not enough tokens"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetProduct(context.Background(), "k1", "B001", 3)
		var apiErr *keepadomain.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsRateLimited())
		assert.Contains(t, apiErr.Body, "not enough tokens")
	})

	t.Run("Resposta inválida", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetProduct(context.Background(), "k1", "B001", 3)
		assert.Error(t, err)
	})
}
