package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/internal/scheduler"
)

var (
	syncMarketplaces []string
	imageBatchSize   int
	imageMaxItems    int
)

var syncDailyCmd = &cobra.Command{
	Use:   "sync-daily",
	Short: "Sincroniza o relatório diário da Sellerboard",
	Example: `  stockmind sync-daily
  stockmind sync-daily --marketplace DE --marketplace FR`,
	Args: cobra.NoArgs,
	RunE: runSyncDaily,
}

var syncImagesCmd = &cobra.Command{
	Use:   "sync-images",
	Short: "Resolve imagens de produtos sem imagem usando o Keepa",
	Example: `  stockmind sync-images
  stockmind sync-images --batch-size 100 --max-items 20`,
	Args: cobra.NoArgs,
	RunE: runSyncImages,
}

func init() {
	rootCmd.AddCommand(syncDailyCmd, syncImagesCmd)

	syncDailyCmd.Flags().StringSliceVar(&syncMarketplaces, "marketplace", nil, "marketplaces a sincronizar (padrão: todos os configurados)")

	syncImagesCmd.Flags().IntVar(&imageBatchSize, "batch-size", 0, "candidatos lidos por rodada, entre 50 e 2000 (padrão: KEEPA_BATCH_SIZE)")
	syncImagesCmd.Flags().IntVar(&imageMaxItems, "max-items", 0, "limite de itens consultados no Keepa (padrão: KEEPA_ITEMS_PER_RUN)")
}

func runSyncDaily(cmd *cobra.Command, _ []string) error {
	report, err := app.DailySync.Sync(cmd.Context(), scheduler.SyncRequest{
		OwnerID:      ownerID,
		Marketplaces: syncMarketplaces,
	})
	if err != nil {
		return err
	}

	displayDailyReport(report)

	if !report.Success {
		return fmt.Errorf("%d marketplace(s) falharam", len(report.Failures))
	}
	return nil
}

func displayDailyReport(report *domain.DailySyncReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "MARKETPLACE\tDATA\tLINHAS\tGRAVADOS\tDESCARTADOS")
	for _, m := range report.Marketplaces {
		dropped := 0
		for _, n := range m.Dropped {
			dropped += n
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", m.Marketplace, m.ReportDate, m.Rows, m.Imported, dropped)
	}
	for _, f := range report.Failures {
		fmt.Fprintf(w, "%s\tFALHA (%s)\t-\t-\t%s\n", f.Marketplace, f.Stage, f.Error)
	}
	w.Flush()

	fmt.Printf("\nrun_id=%s gravados=%d produtos_atualizados=%d duração=%s\n",
		report.RunID, report.Imported, report.RefreshedSKU, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}

func runSyncImages(cmd *cobra.Command, _ []string) error {
	defaultBatch, defaultMax := app.ImageSync.DefaultLimits()
	if !cmd.Flags().Changed("batch-size") {
		imageBatchSize = defaultBatch
	}
	if !cmd.Flags().Changed("max-items") {
		imageMaxItems = defaultMax
	}

	summary, err := app.ImageSync.Run(cmd.Context(), imageBatchSize, imageMaxItems)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tLIDOS\tPROCESSADOS\tENCONTRADOS\tCACHE\tSEM IMAGEM\tFALHAS\tCOTA")
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%t\n",
		summary.RunID, summary.TotalScanned, summary.Processed, summary.Found,
		summary.ReusedFromCache, summary.NotFound, summary.Failed, summary.StoppedForQuota)
	w.Flush()

	return nil
}
