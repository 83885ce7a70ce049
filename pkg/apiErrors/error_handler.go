package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/Adrian140/Stockmind/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrNotFound            = "VAL_004" // Rota ou recurso inexistente
	ErrMethodNotAllowed    = "VAL_005" // Método HTTP não suportado

	// Erros de sincronização
	ErrQuotaExhausted = "SYNC_001" // Cota do serviço externo esgotada
	ErrSyncInProgress = "SYNC_002" // Job já em execução
	ErrNoSources      = "SYNC_003" // Nenhuma origem configurada

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrQuotaExhausted:        http.StatusTooManyRequests,
	ErrSyncInProgress:        http.StatusConflict,
	ErrNoSources:             http.StatusUnprocessableEntity,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código; códigos desconhecidos viram 500
func StatusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodeFor traduz os erros de domínio para códigos da API
func CodeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrOwnerRequired),
		errors.Is(err, domain.ErrMissingDateRange):
		return ErrMissingRequiredData
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrMissingIdentity):
		return ErrInvalidFormat
	case errors.Is(err, domain.ErrQuotaExhausted):
		return ErrQuotaExhausted
	case errors.Is(err, domain.ErrSyncInProgress):
		return ErrSyncInProgress
	case errors.Is(err, domain.ErrNoSourcesConfigured):
		return ErrNoSources
	case errors.Is(err, domain.ErrPersistence):
		return ErrDatabaseOperation
	case errors.Is(err, domain.ErrSourceFetch):
		return ErrExternalService
	}
	return ErrInternalServer
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    CodeFor(err),
		Message: err.Error(),
	}
}

// WriteFromError escreve a resposta de erro correspondente a um erro de domínio
func WriteFromError(w http.ResponseWriter, err error, message string) {
	apiErr := FromError(err)
	WriteError(w, apiErr.Code, message, apiErr.Message)
}
