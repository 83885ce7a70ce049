package domain

// AllMarketplaces identifica a visão consolidada entre marketplaces
const AllMarketplaces = "ALL"

type ProductKey struct {
	Identity    string `json:"identity"`
	Marketplace string `json:"marketplace"`
}

// ProductMetrics agrega os registros diários de um produto em um intervalo
type ProductMetrics struct {
	Identity     string  `json:"identity"`
	ASIN         string  `json:"asin"`
	Title        string  `json:"title"`
	Marketplace  string  `json:"marketplace"`
	UnitsTotal   int     `json:"units_total"`
	RevenueTotal float64 `json:"revenue_total"`
	ProfitTotal  float64 `json:"profit_total"`
	ProfitUnit   float64 `json:"profit_unit"`
	Days         int     `json:"days"`
	Volatility   float64 `json:"volatility"`
	SumSquares   float64 `json:"-"`
}
