package keepa

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	keepadomain "github.com/Adrian140/Stockmind/infrastructure/integrator/keepa/domain"
	"github.com/Adrian140/Stockmind/infrastructure/integrator/keepa/keepaclient"
	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/pkg/metrics"
)

const (
	imageBaseURL   = "https://images-na.ssl-images-amazon.com/images/I/"
	fallbackDomain = "DE"
	QuotaErrorCode = "SYNC_001"
)

// domainIDs mapeia o marketplace para o identificador de domínio do Keepa
var domainIDs = map[string]int{
	"US": 1,
	"UK": 2,
	"DE": 3,
	"FR": 4,
	"JP": 5,
	"CA": 6,
	"IT": 8,
	"ES": 9,
	"IN": 10,
	"MX": 11,
}

type KeepaIntegrator interface {
	LookupImage(ctx context.Context, key, asin, marketplace string) (*keepadomain.ImageLookup, error)
}

type KeepaService struct {
	cfg    *config.Config
	Client keepaclient.Client
}

func New(cfg *config.Config, client keepaclient.Client) KeepaIntegrator {
	return &KeepaService{
		cfg:    cfg,
		Client: client,
	}
}

// DomainID retorna o domínio do Keepa; marketplaces sem domínio próprio usam DE
func DomainID(marketplace string) int {
	if id, ok := domainIDs[strings.ToUpper(strings.TrimSpace(marketplace))]; ok {
		return id
	}
	return domainIDs[fallbackDomain]
}

// ImageURL monta a URL completa a partir da primeira entrada de imagesCSV
func ImageURL(imagesCSV string) string {
	first, _, _ := strings.Cut(imagesCSV, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return ""
	}
	if strings.HasPrefix(first, "http") {
		return first
	}
	return imageBaseURL + first
}

// LookupImage busca a imagem principal do ASIN.
// Retorna ErrQuotaExhausted quando o Keepa responde 429 ou o saldo de tokens chega ao limite de segurança.
func (s *KeepaService) LookupImage(ctx context.Context, key, asin, marketplace string) (*keepadomain.ImageLookup, error) {
	resp, err := s.Client.GetProduct(ctx, key, asin, DomainID(marketplace))
	if err != nil {
		var apiErr *keepadomain.APIError
		if errors.As(err, &apiErr) && apiErr.IsRateLimited() {
			metrics.KeepaCalls.WithLabelValues("quota").Inc()
			return nil, domain.NewSyncErrorForMarketplace(domain.ErrQuotaExhausted, QuotaErrorCode, marketplace, apiErr.Error())
		}
		metrics.KeepaCalls.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("erro ao consultar o Keepa para o ASIN %s: %w", asin, err)
	}

	metrics.KeepaTokensLeft.Set(float64(resp.TokensLeft))

	floor := s.cfg.Keepa.SafetyRemaining
	if resp.TokensLeft <= floor {
		metrics.KeepaCalls.WithLabelValues("quota").Inc()
		logrus.WithFields(logrus.Fields{
			"asin":        asin,
			"tokens_left": resp.TokensLeft,
			"floor":       floor,
		}).Warn("Saldo de tokens do Keepa no limite de segurança")
		return nil, domain.NewSyncErrorForMarketplace(domain.ErrQuotaExhausted, QuotaErrorCode, marketplace,
			fmt.Sprintf("tokens restantes %d", resp.TokensLeft))
	}

	metrics.KeepaCalls.WithLabelValues("ok").Inc()

	lookup := &keepadomain.ImageLookup{
		ASIN:       asin,
		TokensLeft: resp.TokensLeft,
	}
	if len(resp.Products) > 0 {
		lookup.ImageURL = ImageURL(resp.Products[0].ImagesCSV)
	}

	return lookup, nil
}
