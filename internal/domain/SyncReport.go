package domain

import "time"

// Etapas em que uma sincronização de marketplace pode falhar
const (
	SyncStageFetch     = "fetch"
	SyncStageParse     = "parse"
	SyncStageNormalize = "normalize"
	SyncStageUpsert    = "upsert"
	SyncStageRefresh   = "refresh"
)

// MarketplaceOutcome é o resultado da sincronização de um marketplace
type MarketplaceOutcome struct {
	Marketplace string         `json:"marketplace"`
	ReportDate  string         `json:"report_date,omitempty"`
	Rows        int            `json:"rows"`
	Imported    int64          `json:"imported"`
	Dropped     map[string]int `json:"dropped,omitempty"`
}

type SyncFailure struct {
	Marketplace string `json:"marketplace"`
	Stage       string `json:"stage"`
	Error       string `json:"error"`
}

// DailySyncReport é o relatório retornado por uma execução da sincronização diária
type DailySyncReport struct {
	RunID        string               `json:"run_id"`
	OwnerID      string               `json:"owner_id"`
	Success      bool                 `json:"success"`
	Imported     int64                `json:"imported"`
	Marketplaces []MarketplaceOutcome `json:"marketplaces"`
	Failures     []SyncFailure        `json:"failures"`
	RefreshedSKU int                  `json:"refreshed_skus"`
	StartedAt    time.Time            `json:"started_at"`
	FinishedAt   time.Time            `json:"finished_at"`
}

// ImportReport é o resultado da importação de um arquivo exportado
type ImportReport struct {
	Filename string         `json:"filename"`
	Schema   string         `json:"schema"`
	Rows     int            `json:"rows"`
	Records  int            `json:"records"`
	Imported int64          `json:"imported"`
	Dropped  map[string]int `json:"dropped,omitempty"`
	Start    string         `json:"start,omitempty"`
	End      string         `json:"end,omitempty"`
	// RefreshedSKU é o número de produtos atualizados a partir das vendas importadas
	RefreshedSKU int `json:"refreshed_skus"`
}
