package sellerboardclient

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/Adrian140/Stockmind/internal/domain"
)

const errorBodyLimit = 200

// FetchCSV baixa o texto do relatório diário exportado pela Sellerboard
func (c *SellerboardClient) FetchCSV(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Accept", "text/csv")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(domain.ErrSourceFetch, "erro ao executar a requisição: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return "", errors.Wrapf(domain.ErrSourceFetch, "status %d: %s", resp.StatusCode, string(excerpt))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(domain.ErrSourceFetch, "erro ao ler a resposta: %v", err)
	}

	return string(body), nil
}
