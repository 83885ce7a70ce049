package normalizer

import (
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/Adrian140/Stockmind/internal/csvtable"
	"github.com/Adrian140/Stockmind/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Schema identifica o formato da exportação
type Schema int

const (
	SchemaDaily Schema = iota
	SchemaSummary
)

func (s Schema) String() string {
	if s == SchemaDaily {
		return "daily"
	}
	return "summary"
}

// DropReason explica por que uma linha foi descartada
type DropReason string

const (
	DropNone               DropReason = ""
	DropMissingASIN        DropReason = "missing_asin"
	DropMissingSKU         DropReason = "missing_sku"
	DropMissingMarketplace DropReason = "missing_marketplace"
	DropMissingDate        DropReason = "missing_date"
)

// Options controla a normalização de um arquivo
type Options struct {
	// Filename é usado para inferir o intervalo de exportações resumidas
	Filename string
	Start    *time.Time
	End      *time.Time
	// DefaultMarketplace é usado quando a coluna de marketplace está ausente ou vazia
	DefaultMarketplace string
}

// Result é o resultado da normalização de uma tabela
type Result struct {
	Schema  Schema
	Rows    int
	Records []domain.DailySalesRecord
	Dropped map[DropReason]int
	Range   *DateRange
}

// DroppedByReason converte o histograma para chaves string (relatórios e JSON)
func (r *Result) DroppedByReason() map[string]int {
	out := make(map[string]int, len(r.Dropped))
	for reason, count := range r.Dropped {
		out[string(reason)] = count
	}
	return out
}

// rowMapper converte uma linha bruta em registros canônicos
type rowMapper interface {
	mapRow(rec csvtable.Record) ([]domain.DailySalesRecord, DropReason)
}

// DetectSchema retorna diário quando existem as colunas Date e ASIN
func DetectSchema(headers []string) Schema {
	cols := resolveColumns(headers)
	if cols.date != "" && cols.asin != "" {
		return SchemaDaily
	}
	return SchemaSummary
}

// Normalize resolve o formato uma única vez e converte todas as linhas da tabela
func Normalize(table *csvtable.Table, opts Options) (*Result, error) {
	result := &Result{
		Dropped: make(map[DropReason]int),
	}
	if table == nil {
		return result, nil
	}

	cols := resolveColumns(table.Headers)
	result.Schema = DetectSchema(table.Headers)
	result.Rows = len(table.Records)

	var mapper rowMapper
	switch result.Schema {
	case SchemaDaily:
		mapper = dailyMapper{cols: cols, defaultMarketplace: opts.DefaultMarketplace}
	default:
		rng, err := resolveRange(opts)
		if err != nil {
			return nil, err
		}
		result.Range = &rng
		mapper = summaryMapper{cols: cols, defaultMarketplace: opts.DefaultMarketplace, days: rng.Days()}
	}

	result.Records = make([]domain.DailySalesRecord, 0, len(table.Records))
	for _, rec := range table.Records {
		records, reason := mapper.mapRow(rec)
		if reason != DropNone {
			result.Dropped[reason]++
			continue
		}
		result.Records = append(result.Records, records...)
	}

	return result, nil
}

// NormalizeDailyRow converte uma linha da exportação diária.
// Retorna nil e o motivo quando faltam campos de identidade.
func NormalizeDailyRow(headers []string, rec csvtable.Record, defaultMarketplace string) (*domain.DailySalesRecord, DropReason) {
	m := dailyMapper{cols: resolveColumns(headers), defaultMarketplace: defaultMarketplace}
	return m.mapOne(rec)
}

type identity struct {
	asin        string
	sku         string
	marketplace string
}

func readIdentity(cols columnSet, rec csvtable.Record, defaultMarketplace string) (identity, DropReason) {
	id := identity{
		asin: value(rec, cols.asin),
		sku:  value(rec, cols.sku),
	}
	if id.asin == "" {
		return id, DropMissingASIN
	}
	if id.sku == "" {
		return id, DropMissingSKU
	}

	rawMarketplace := value(rec, cols.marketplace)
	if rawMarketplace == "" {
		rawMarketplace = defaultMarketplace
	}
	if rawMarketplace == "" {
		return id, DropMissingMarketplace
	}
	id.marketplace = MapMarketplace(rawMarketplace)

	return id, DropNone
}

func baseRecord(cols columnSet, rec csvtable.Record, id identity) domain.DailySalesRecord {
	raw, _ := json.Marshal(rec)

	return domain.DailySalesRecord{
		Marketplace: id.marketplace,
		ASIN:        id.asin,
		SKU:         id.sku,
		Title:       value(rec, cols.title),
		Category:    MapCategory(value(rec, cols.category)),
		ROI:         ParseNumber(value(rec, cols.roi)),
		Raw:         raw,
	}
}

// costPerUnit retorna nil quando não há custo ou unidades
func costPerUnit(cols columnSet, rec csvtable.Record, units int) *float64 {
	if cols.totalCost == "" || units <= 0 {
		return nil
	}
	cost := math.Abs(ParseNumber(value(rec, cols.totalCost))) / float64(units)
	return &cost
}

type dailyMapper struct {
	cols               columnSet
	defaultMarketplace string
}

func (m dailyMapper) mapRow(rec csvtable.Record) ([]domain.DailySalesRecord, DropReason) {
	record, reason := m.mapOne(rec)
	if record == nil {
		return nil, reason
	}
	return []domain.DailySalesRecord{*record}, DropNone
}

func (m dailyMapper) mapOne(rec csvtable.Record) (*domain.DailySalesRecord, DropReason) {
	id, reason := readIdentity(m.cols, rec, m.defaultMarketplace)
	if reason != DropNone {
		return nil, reason
	}

	date, ok := ParseDate(value(rec, m.cols.date))
	if !ok {
		return nil, DropMissingDate
	}

	units := parseUnits(values(rec, m.cols.dailyUnits)...)
	revenue := 0.0
	for _, v := range values(rec, m.cols.dailySales) {
		revenue += ParseNumber(v)
	}

	record := baseRecord(m.cols, rec, id)
	record.ReportDate = date
	record.UnitsTotal = units
	record.RevenueTotal = revenue
	record.NetProfit = ParseNumber(value(rec, m.cols.netProfit))
	record.CostOfGoods = costPerUnit(m.cols, rec, units)

	return &record, DropNone
}

type summaryMapper struct {
	cols               columnSet
	defaultMarketplace string
	days               []time.Time
}

// mapRow espalha os totais da linha por todos os dias do intervalo
func (m summaryMapper) mapRow(rec csvtable.Record) ([]domain.DailySalesRecord, DropReason) {
	id, reason := readIdentity(m.cols, rec, m.defaultMarketplace)
	if reason != DropNone {
		return nil, reason
	}
	if len(m.days) == 0 {
		return nil, DropMissingDate
	}

	units := parseUnits(value(rec, m.cols.units))
	revenue := decimal.NewFromFloat(ParseNumber(value(rec, m.cols.sales)))
	profit := decimal.NewFromFloat(ParseNumber(value(rec, m.cols.netProfit)))

	unitsByDay := DistributeUnits(units, len(m.days))
	revenueByDay := DistributeAmount(revenue, len(m.days))
	profitByDay := DistributeAmount(profit, len(m.days))
	cost := costPerUnit(m.cols, rec, units)

	base := baseRecord(m.cols, rec, id)
	records := make([]domain.DailySalesRecord, len(m.days))
	for i, day := range m.days {
		r := base
		r.ReportDate = day
		r.UnitsTotal = unitsByDay[i]
		r.RevenueTotal = revenueByDay[i]
		r.NetProfit = profitByDay[i]
		if cost != nil {
			c := *cost
			r.CostOfGoods = &c
		}
		records[i] = r
	}

	return records, DropNone
}
