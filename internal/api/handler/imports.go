package handler

import (
	"net/http"

	"github.com/Adrian140/Stockmind/internal/usecases/ingesting"
	"github.com/Adrian140/Stockmind/pkg/apiErrors"
	"github.com/Adrian140/Stockmind/pkg/log"
	"github.com/Adrian140/Stockmind/pkg/utils"
)

const maxUploadSize = 32 << 20

// ImportFile recebe uma exportação (CSV ou XLSX) via multipart no campo "file"
func ImportFile(service ingesting.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - ImportFile")

		_, ownerID, ok := resolveOwner(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário multipart inválido", err.Error())
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo file é obrigatório", nil)
			return
		}
		defer file.Close()

		start, err := utils.ParseDate(r.FormValue("start"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start deve estar no formato YYYY-MM-DD", err.Error())
			return
		}
		end, err := utils.ParseDate(r.FormValue("end"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end deve estar no formato YYYY-MM-DD", err.Error())
			return
		}

		report, err := service.ImportFile(r.Context(), ingesting.ImportRequest{
			OwnerID:     ownerID,
			Filename:    header.Filename,
			Reader:      file,
			Start:       start,
			End:         end,
			Marketplace: r.FormValue("marketplace"),
		})
		if err != nil {
			logger.WithError(err).Error("Erro ao importar arquivo")
			apiErrors.WriteFromError(w, err, "Erro ao importar arquivo")
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
