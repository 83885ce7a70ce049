package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/Adrian140/Stockmind/internal/domain"
	"github.com/Adrian140/Stockmind/pkg/apiErrors"
	"github.com/Adrian140/Stockmind/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// resolveOwner usa o dono do token; administradores podem informar outro via ?owner_id
func resolveOwner(w http.ResponseWriter, r *http.Request) (*domain.Claims, string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, "", false
	}

	ownerID := claims.OwnerID
	if override := r.URL.Query().Get("owner_id"); override != "" && claims.RoleID == middleware.RoleAdmin {
		ownerID = override
	}

	return claims, ownerID, true
}

// queryInt retorna fallback quando o parâmetro está ausente
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
