package aggregating

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/infrastructure/repository"
	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/pkg/utils"
)

// PageSize é a quantidade de registros lidos por página
const PageSize = 1000

type AggregatorService interface {
	Aggregate(ctx context.Context, params AggregateParams) (map[domain.ProductKey]*domain.ProductMetrics, error)
}

// AggregateParams define o intervalo e o escopo da agregação.
// Marketplace igual a "ALL" equivale a AllMarkets.
type AggregateParams struct {
	OwnerID     string
	Start       time.Time
	End         time.Time
	Marketplace *string
	AllMarkets  bool
}

type Service struct {
	DailySalesRepo repository.DailySalesRepository
}

func NewAggregatorService(dailySalesRepo repository.DailySalesRepository) AggregatorService {
	return &Service{
		DailySalesRepo: dailySalesRepo,
	}
}

func (s *Service) Aggregate(ctx context.Context, params AggregateParams) (map[domain.ProductKey]*domain.ProductMetrics, error) {
	if params.OwnerID == "" {
		return nil, domain.ErrOwnerRequired
	}
	if params.Start.After(params.End) {
		return nil, domain.ErrInvalidRange
	}

	allMarkets := params.AllMarkets
	var marketplace *string
	if params.Marketplace != nil {
		code := strings.ToUpper(strings.TrimSpace(*params.Marketplace))
		switch code {
		case "":
		case domain.AllMarketplaces:
			allMarkets = true
		default:
			marketplace = &code
		}
	}
	if allMarkets {
		marketplace = nil
	}

	groups := make(map[domain.ProductKey]*domain.ProductMetrics)
	filter := domain.DailySalesFilter{
		OwnerID:     params.OwnerID,
		StartDate:   domain.DateOnly(params.Start),
		EndDate:     domain.DateOnly(params.End),
		Marketplace: marketplace,
		Limit:       PageSize,
	}

	pages := 0
	for {
		records, err := s.DailySalesRepo.ListRange(ctx, filter)
		if err != nil {
			return nil, err
		}
		pages++

		for _, rec := range records {
			accumulate(groups, rec)
		}

		if len(records) < PageSize {
			break
		}
		filter.Offset += PageSize
	}

	window := windowDays(filter.StartDate, filter.EndDate)
	for _, m := range groups {
		finalize(m, window)
	}

	if allMarkets {
		groups = MergeAllMarkets(groups)
	}

	logrus.WithFields(logrus.Fields{
		"owner_id": params.OwnerID,
		"start":    filter.StartDate.Format(time.DateOnly),
		"end":      filter.EndDate.Format(time.DateOnly),
		"pages":    pages,
		"products": len(groups),
	}).Debug("Métricas agregadas")

	return groups, nil
}

func accumulate(groups map[domain.ProductKey]*domain.ProductMetrics, rec domain.DailySalesRecord) {
	key := domain.ProductKey{Identity: rec.IdentityKey(), Marketplace: rec.Marketplace}

	m, ok := groups[key]
	if !ok {
		m = &domain.ProductMetrics{
			Identity:    key.Identity,
			Marketplace: key.Marketplace,
		}
		groups[key] = m
	}
	if m.ASIN == "" {
		m.ASIN = rec.ASIN
	}
	if m.Title == "" {
		m.Title = rec.Title
	}

	units := float64(rec.UnitsTotal)
	m.UnitsTotal += rec.UnitsTotal
	m.RevenueTotal += rec.RevenueTotal
	m.ProfitTotal += rec.NetProfit
	m.SumSquares += units * units
	m.Days++
}

// finalize calcula a volatilidade sobre todos os dias do intervalo.
// Dias sem registro contam como zero unidades.
func finalize(m *domain.ProductMetrics, window int) {
	m.Volatility = Volatility(m.UnitsTotal, m.SumSquares, max(window, m.Days))
	m.RevenueTotal = utils.RoundWithTwoDecimalPlace(m.RevenueTotal)
	m.ProfitTotal = utils.RoundWithTwoDecimalPlace(m.ProfitTotal)
	m.ProfitUnit = profitPerUnit(m.ProfitTotal, m.UnitsTotal)
}

// windowDays conta os dias de calendário em [start, end]
func windowDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Volatility é o coeficiente de variação das unidades diárias
func Volatility(units int, sumSquares float64, days int) float64 {
	if days <= 0 {
		return 0
	}

	mean := float64(units) / float64(days)
	if mean == 0 {
		return 0
	}

	variance := math.Max(0, sumSquares/float64(days)-mean*mean)

	return math.Sqrt(variance) / mean
}

func profitPerUnit(profit float64, units int) float64 {
	if units == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(profit / float64(units))
}

// MergeAllMarkets consolida os produtos de mesma identidade sob o marketplace "ALL".
// A volatilidade consolidada é a maior entre os marketplaces (aproximação).
func MergeAllMarkets(groups map[domain.ProductKey]*domain.ProductMetrics) map[domain.ProductKey]*domain.ProductMetrics {
	merged := make(map[domain.ProductKey]*domain.ProductMetrics)

	for _, m := range Sorted(groups) {
		key := domain.ProductKey{Identity: m.Identity, Marketplace: domain.AllMarketplaces}

		acc, ok := merged[key]
		if !ok {
			copied := *m
			copied.Marketplace = domain.AllMarketplaces
			merged[key] = &copied
			continue
		}

		if acc.ASIN == "" {
			acc.ASIN = m.ASIN
		}
		if acc.Title == "" {
			acc.Title = m.Title
		}
		acc.UnitsTotal += m.UnitsTotal
		acc.RevenueTotal = utils.RoundWithTwoDecimalPlace(acc.RevenueTotal + m.RevenueTotal)
		acc.ProfitTotal = utils.RoundWithTwoDecimalPlace(acc.ProfitTotal + m.ProfitTotal)
		acc.SumSquares += m.SumSquares
		acc.Days += m.Days
		acc.Volatility = math.Max(acc.Volatility, m.Volatility)
		acc.ProfitUnit = profitPerUnit(acc.ProfitTotal, acc.UnitsTotal)
	}

	return merged
}

// Sorted ordena por unidades (decrescente), depois identidade e marketplace
func Sorted(groups map[domain.ProductKey]*domain.ProductMetrics) []*domain.ProductMetrics {
	out := make([]*domain.ProductMetrics, 0, len(groups))
	for _, m := range groups {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitsTotal != out[j].UnitsTotal {
			return out[i].UnitsTotal > out[j].UnitsTotal
		}
		if out[i].Identity != out[j].Identity {
			return out[i].Identity < out[j].Identity
		}
		return out[i].Marketplace < out[j].Marketplace
	})

	return out
}
