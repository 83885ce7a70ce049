package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Adrian140/Stockmind/internal/usecases/ingesting"
	"github.com/Adrian140/Stockmind/pkg/utils"
)

var (
	importStart       string
	importEnd         string
	importMarketplace string
)

var importCmd = &cobra.Command{
	Use:   "import <arquivo>",
	Short: "Importa uma exportação CSV ou XLSX da Sellerboard",
	Long: `Importa uma exportação diária ou resumida. Exportações resumidas precisam de
um intervalo de datas, informado por --start/--end ou no nome do arquivo
(ex: "Dashboard Products 01_03_2024-31_03_2024.csv").`,
	Example: `  stockmind import diario.csv
  stockmind import resumo.xlsx --start 2024-03-01 --end 2024-03-31 --marketplace DE`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importStart, "start", "", "início do intervalo (YYYY-MM-DD)")
	importCmd.Flags().StringVar(&importEnd, "end", "", "fim do intervalo (YYYY-MM-DD)")
	importCmd.Flags().StringVar(&importMarketplace, "marketplace", "", "marketplace usado quando o arquivo não tem a coluna")
}

func runImport(cmd *cobra.Command, args []string) error {
	start, err := utils.ParseDate(importStart)
	if err != nil {
		return fmt.Errorf("--start inválido: %w", err)
	}
	end, err := utils.ParseDate(importEnd)
	if err != nil {
		return fmt.Errorf("--end inválido: %w", err)
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	report, err := app.Ingester.ImportFile(cmd.Context(), ingesting.ImportRequest{
		OwnerID:     ownerID,
		Filename:    filepath.Base(args[0]),
		Reader:      file,
		Start:       start,
		End:         end,
		Marketplace: importMarketplace,
	})
	if err != nil {
		return err
	}

	fmt.Printf("arquivo=%s formato=%s linhas=%d registros=%d gravados=%d produtos_atualizados=%d\n",
		report.Filename, report.Schema, report.Rows, report.Records, report.Imported, report.RefreshedSKU)
	if report.Start != "" {
		fmt.Printf("intervalo=%s a %s\n", report.Start, report.End)
	}

	reasons := make([]string, 0, len(report.Dropped))
	for reason := range report.Dropped {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Printf("descartados[%s]=%d\n", reason, report.Dropped[reason])
	}

	return nil
}
