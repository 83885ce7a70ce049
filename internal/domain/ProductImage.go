package domain

import "time"

const AsinImageSourceKeepa = "keepa-sync"

// AsinImageCacheEntry guarda a imagem resolvida para um par dono+ASIN
type AsinImageCacheEntry struct {
	OwnerID   string    `json:"owner_id"`
	ASIN      string    `json:"asin"`
	ImageURL  string    `json:"image_url"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImageCandidate é um produto sem imagem aguardando resolução
type ImageCandidate struct {
	OwnerID     string    `json:"owner_id"`
	ASIN        string    `json:"asin"`
	Marketplace string    `json:"marketplace"`
	CreatedAt   time.Time `json:"created_at"`
}

type CredentialOrigin string

const (
	CredentialOriginOwner CredentialOrigin = "owner"
	CredentialOriginPool  CredentialOrigin = "pool"
)

// SyncCredential é uma chave de API usada em uma chamada externa
type SyncCredential struct {
	Key    string
	Origin CredentialOrigin
}

// ImageSyncSummary resume uma execução do resolvedor de imagens
type ImageSyncSummary struct {
	RunID           string    `json:"run_id"`
	Processed       int       `json:"processed"`
	Found           int       `json:"found"`
	ReusedFromCache int       `json:"reused_from_cache"`
	NotFound        int       `json:"not_found"`
	Failed          int       `json:"failed"`
	StoppedForQuota bool      `json:"stopped_for_quota"`
	TotalScanned    int       `json:"total_scanned"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}
