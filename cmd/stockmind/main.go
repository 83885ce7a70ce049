package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Adrian140/Stockmind/internal/bootstrap"
	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/pkg/log"
)

var (
	cfg     *config.Config
	app     *bootstrap.App
	ownerID string
)

var rootCmd = &cobra.Command{
	Use:   "stockmind",
	Short: "Stockmind CLI - sincronização e métricas de vendas da Amazon",
	Long: `Ferramenta de linha de comando do Stockmind. Executa a sincronização diária
da Sellerboard, a resolução de imagens pelo Keepa, a importação de exportações
CSV/XLSX e a agregação de métricas por produto.`,
	PersistentPreRunE:  persistentPreRun,
	PersistentPostRunE: persistentPostRun,
	SilenceUsage:       true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "", "dono dos dados (padrão: SELLERBOARD_OWNER_ID)")
}

// persistentPreRun carrega a configuração e conecta ao banco antes de cada comando
func persistentPreRun(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	var err error
	cfg, err = config.NewConfig()
	if err != nil {
		return fmt.Errorf("erro ao carregar configuração: %w", err)
	}
	log.Configure(cfg.App.LogLevel)

	if ownerID == "" {
		ownerID = cfg.Sellerboard.OwnerID
	}

	app, err = bootstrap.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	return nil
}

func persistentPostRun(_ *cobra.Command, _ []string) error {
	if app != nil {
		app.Close()
	}
	return nil
}

func main() {
	log.Configure("info")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("Comando falhou")
		os.Exit(1)
	}
}
