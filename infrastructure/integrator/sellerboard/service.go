package sellerboard

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/infrastructure/integrator/sellerboard/sellerboardclient"
	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/internal/csvtable"
	"github.com/Adrian140/Stockmind/internal/domain"
)

type SellerboardIntegrator interface {
	Sources() []config.MarketSource
	FetchDailyReport(ctx context.Context, source config.MarketSource) (*csvtable.Table, error)
}

type SellerboardService struct {
	cfg    *config.Config
	Client sellerboardclient.Client
}

func New(cfg *config.Config, client sellerboardclient.Client) SellerboardIntegrator {
	return &SellerboardService{
		cfg:    cfg,
		Client: client,
	}
}

// Sources retorna os marketplaces com URL diária configurada
func (s *SellerboardService) Sources() []config.MarketSource {
	return s.cfg.Sellerboard.Sources()
}

// FetchDailyReport baixa e interpreta o CSV diário de um marketplace.
// Erros de download envolvem ErrSourceFetch; um CSV sem cabeçalho vira SyncError de parse.
func (s *SellerboardService) FetchDailyReport(ctx context.Context, source config.MarketSource) (*csvtable.Table, error) {
	text, err := s.Client.FetchCSV(ctx, source.URL)
	if err != nil {
		return nil, domain.NewSyncErrorForMarketplace(err, domain.SyncStageFetch, source.Code, "")
	}

	if strings.TrimSpace(text) == "" {
		logrus.WithField("marketplace", source.Code).Warn("CSV diário vazio recebido da Sellerboard")
		return &csvtable.Table{}, nil
	}

	table := csvtable.Parse(text)
	if len(table.Headers) == 0 {
		return nil, domain.NewSyncErrorForMarketplace(domain.ErrMissingIdentity, domain.SyncStageParse, source.Code, "CSV sem cabeçalho")
	}

	return table, nil
}
