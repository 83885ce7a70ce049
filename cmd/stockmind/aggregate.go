package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Adrian140/Stockmind/internal/usecases/aggregating"
	"github.com/Adrian140/Stockmind/pkg/utils"
)

var (
	aggregateStart       string
	aggregateEnd         string
	aggregateMarketplace string
	aggregateLimit       int
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Agrega as vendas de um intervalo por produto",
	Example: `  stockmind aggregate --start 2024-03-01 --end 2024-03-31
  stockmind aggregate --start 2024-03-01 --end 2024-03-31 --marketplace ALL --limit 20`,
	Args: cobra.NoArgs,
	RunE: runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().StringVar(&aggregateStart, "start", "", "início do intervalo (YYYY-MM-DD)")
	aggregateCmd.Flags().StringVar(&aggregateEnd, "end", "", "fim do intervalo (YYYY-MM-DD)")
	aggregateCmd.Flags().StringVar(&aggregateMarketplace, "marketplace", "", "marketplace ou ALL para consolidar")
	aggregateCmd.Flags().IntVar(&aggregateLimit, "limit", 50, "quantidade de produtos exibidos (0 = todos)")
	_ = aggregateCmd.MarkFlagRequired("start")
	_ = aggregateCmd.MarkFlagRequired("end")
}

func runAggregate(cmd *cobra.Command, _ []string) error {
	start, err := utils.ParseDate(aggregateStart)
	if err != nil {
		return fmt.Errorf("--start inválido: %w", err)
	}
	end, err := utils.ParseDate(aggregateEnd)
	if err != nil {
		return fmt.Errorf("--end inválido: %w", err)
	}
	if start == nil || end == nil {
		return errors.New("--start e --end são obrigatórios")
	}

	params := aggregating.AggregateParams{
		OwnerID: ownerID,
		Start:   *start,
		End:     *end,
	}
	if mp := strings.ToUpper(strings.TrimSpace(aggregateMarketplace)); mp != "" {
		params.Marketplace = &mp
	}

	groups, err := app.Aggregator.Aggregate(cmd.Context(), params)
	if err != nil {
		return err
	}

	products := aggregating.Sorted(groups)
	if aggregateLimit > 0 && len(products) > aggregateLimit {
		products = products[:aggregateLimit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SKU\tASIN\tMARKETPLACE\tUNIDADES\tRECEITA\tLUCRO\tLUCRO/UN\tDIAS\tVOLATILIDADE")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%d\t%.3f\n",
			p.Identity, p.ASIN, p.Marketplace, p.UnitsTotal, p.RevenueTotal,
			p.ProfitTotal, p.ProfitUnit, p.Days, p.Volatility)
	}
	w.Flush()

	fmt.Printf("\n%d produto(s) de %d\n", len(products), len(groups))
	return nil
}
