package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/infrastructure/database/postgres"
	"github.com/Adrian140/Stockmind/infrastructure/migration"
	"github.com/Adrian140/Stockmind/internal/config"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	if err := migration.Apply(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migração")
	}

	logrus.WithField("elapsed", time.Since(startTime).String()).Info("Migração concluída com sucesso")
}
