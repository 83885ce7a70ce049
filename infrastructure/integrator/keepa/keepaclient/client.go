package keepaclient

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks

import (
	"context"
	"net/http"
	"time"

	keepadomain "github.com/Adrian140/Stockmind/infrastructure/integrator/keepa/domain"
	"github.com/Adrian140/Stockmind/internal/config"
)

type Client interface {
	GetProduct(ctx context.Context, key, asin string, domainID int) (*keepadomain.ProductResponse, error)
}

type KeepaClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Keepa.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &KeepaClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: cfg.Keepa.URL,
	}
}
