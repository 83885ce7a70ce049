package sellerboardclient

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks

import (
	"context"
	"net/http"
	"time"

	"github.com/Adrian140/Stockmind/internal/config"
)

type Client interface {
	FetchCSV(ctx context.Context, url string) (string, error)
}

type SellerboardClient struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Sellerboard.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &SellerboardClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: cfg.Sellerboard.UserAgent,
	}
}
