package keepaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	keepadomain "github.com/Adrian140/Stockmind/infrastructure/integrator/keepa/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const errorBodyLimit = 180

// GetProduct consulta um ASIN sem estatísticas nem histórico (custo mínimo de tokens)
func (c *KeepaClient) GetProduct(ctx context.Context, key, asin string, domainID int) (*keepadomain.ProductResponse, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/product")

	query := endpoint.Query()
	query.Set("key", key)
	query.Set("domain", strconv.Itoa(domainID))
	query.Set("asin", asin)
	query.Set("stats", "0")
	query.Set("history", "0")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &keepadomain.APIError{StatusCode: resp.StatusCode, Body: string(excerpt)}
	}

	var response keepadomain.ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return &response, nil
}
