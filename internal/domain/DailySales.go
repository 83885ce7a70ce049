package domain

import (
	"encoding/json"
	"time"
)

// DailySalesRecord representa o desempenho de um produto em um dia e marketplace
type DailySalesRecord struct {
	ID           int64           `json:"id,omitempty"`
	OwnerID      string          `json:"owner_id,omitempty"`
	ReportDate   time.Time       `json:"report_date"`
	Marketplace  string          `json:"marketplace"`
	ASIN         string          `json:"asin"`
	SKU          string          `json:"sku"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	UnitsTotal   int             `json:"units_total"`
	RevenueTotal float64         `json:"revenue_total"`
	NetProfit    float64         `json:"net_profit"`
	ROI          float64         `json:"roi"`
	CostOfGoods  *float64        `json:"cost_of_goods"`
	Raw          json.RawMessage `json:"raw,omitempty"`
	CreatedAt    time.Time       `json:"created_at,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}

// IdentityKey retorna o campo de identidade autoritativo do registro (SKU)
func (r DailySalesRecord) IdentityKey() string {
	return r.SKU
}

// DedupeKey é a chave natural usada para colapsar duplicados dentro de um lote
type DedupeKey struct {
	ReportDate  string
	Marketplace string
	Identity    string
}

func (r DailySalesRecord) DedupeKey() DedupeKey {
	return DedupeKey{
		ReportDate:  r.ReportDate.Format(time.DateOnly),
		Marketplace: r.Marketplace,
		Identity:    r.IdentityKey(),
	}
}

// DateOnly trunca um horário para a data civil em UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DailySalesFilter filtra a leitura paginada de registros diários
type DailySalesFilter struct {
	OwnerID     string
	StartDate   time.Time
	EndDate     time.Time
	Marketplace *string
	Limit       uint64
	Offset      uint64
}
