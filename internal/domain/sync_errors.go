package domain

import (
	"errors"
	"fmt"
)

var (
	// Erros de dados de origem
	ErrMissingIdentity  = errors.New("record missing identity fields")
	ErrMissingDateRange = errors.New("summary export requires a date range")
	ErrSourceFetch      = errors.New("source fetch failed")

	// Erros de persistência
	ErrPersistence = errors.New("persistence failure")

	// Erros da integração de imagens
	ErrCredentialUnavailable = errors.New("no credential available")
	ErrQuotaExhausted        = errors.New("external quota exhausted")

	// Erros de configuração e validação
	ErrNoSourcesConfigured = errors.New("no source urls configured")
	ErrOwnerRequired       = errors.New("owner ID is required")
	ErrInvalidRange        = errors.New("invalid date range")

	// ErrSyncInProgress indica que o mesmo job já está em execução
	ErrSyncInProgress = errors.New("sync already in progress")
)

// SyncError é um erro com contexto adicional de sincronização
type SyncError struct {
	Err         error
	Code        string
	Marketplace string
	Details     string
}

func (e *SyncError) Error() string {
	prefix := e.Err.Error()
	if e.Marketplace != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, e.Marketplace)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", prefix, e.Details)
	}
	return prefix
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func NewSyncError(err error, code string, details string) *SyncError {
	return &SyncError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewSyncErrorForMarketplace(err error, code string, marketplace string, details string) *SyncError {
	return &SyncError{
		Err:         err,
		Code:        code,
		Marketplace: marketplace,
		Details:     details,
	}
}
