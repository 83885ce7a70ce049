package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/infrastructure/database/postgres"
	"github.com/Adrian140/Stockmind/infrastructure/integrator/keepa"
	"github.com/Adrian140/Stockmind/infrastructure/integrator/keepa/keepaclient"
	"github.com/Adrian140/Stockmind/infrastructure/integrator/sellerboard"
	"github.com/Adrian140/Stockmind/infrastructure/integrator/sellerboard/sellerboardclient"
	"github.com/Adrian140/Stockmind/infrastructure/repository"
	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/internal/scheduler"
	"github.com/Adrian140/Stockmind/internal/usecases/aggregating"
	"github.com/Adrian140/Stockmind/internal/usecases/authenticating"
	"github.com/Adrian140/Stockmind/internal/usecases/ingesting"
	"github.com/Adrian140/Stockmind/pkg/runlock"
)

// App agrupa as dependências compartilhadas pela API e pela CLI
type App struct {
	Config        *config.Config
	Conn          *postgres.Connection
	Authenticator authenticating.Authenticator
	Ingester      ingesting.Ingester
	Aggregator    aggregating.AggregatorService
	DailySync     *scheduler.DailySalesSyncService
	ImageSync     *scheduler.KeepaImageSyncService
}

// New conecta ao banco e monta repositórios, integradores, serviços e agendadores
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("erro ao testar conexão com PostgreSQL: %w", err)
	}
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	locker, err := runlock.New(ctx, cfg.Redis.URL)
	if err != nil {
		conn.Close()
		return nil, err
	}

	dailySalesRepo := repository.NewDailySalesRepository(conn)
	productRepo := repository.NewProductRepository(conn)
	asinImageRepo := repository.NewAsinImageRepository(conn)
	integrationRepo := repository.NewIntegrationRepository(conn)

	sellerboardIntegrator := sellerboard.New(cfg, sellerboardclient.NewClient(cfg))
	keepaIntegrator := keepa.New(cfg, keepaclient.NewClient(cfg))

	ingester := ingesting.NewService(dailySalesRepo, productRepo)

	return &App{
		Config:        cfg,
		Conn:          conn,
		Authenticator: authenticating.NewService(cfg),
		Ingester:      ingester,
		Aggregator:    aggregating.NewAggregatorService(dailySalesRepo),
		DailySync: scheduler.NewDailySalesSyncService(
			sellerboardIntegrator,
			ingester,
			productRepo,
			locker,
			cfg,
		),
		ImageSync: scheduler.NewKeepaImageSyncService(
			productRepo,
			asinImageRepo,
			integrationRepo,
			keepaIntegrator,
			locker,
			cfg,
		),
	}, nil
}

// StartSchedulers inicia os agendadores em background
func (a *App) StartSchedulers(ctx context.Context) {
	if err := a.DailySync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de vendas diárias")
	} else {
		logrus.Info("Agendador de vendas diárias iniciado com sucesso")
	}

	if err := a.ImageSync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de imagens do Keepa")
	} else {
		logrus.Info("Agendador de imagens do Keepa iniciado com sucesso")
	}
}

func (a *App) Close() {
	if err := a.Conn.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
	}
}
