package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/internal/api"
	"github.com/Adrian140/Stockmind/internal/bootstrap"
	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/pkg/log"
)

func main() {
	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar dependências")
	}
	defer app.Close()

	app.StartSchedulers(ctx)

	server, err := api.New(
		cfg,
		app.Authenticator,
		app.DailySync,
		app.ImageSync,
		app.Aggregator,
		app.Ingester,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
