package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/vfg2006/content-ops-api/internal/config"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/internal/usecases/importing"
	"github.com/vfg2006/content-ops-api/internal/usecases/insighting"
	"github.com/vfg2006/content-ops-api/pkg/apiErrors"
	"github.com/vfg2006/content-ops-api/pkg/log"
	"github.com/vfg2006/content-ops-api/pkg/utils"
)

// Folga para os demais campos do multipart além do arquivo
const multipartOverhead = 1 << 20

var csvMimeTypes = map[string]bool{
	"text/csv":                 true,
	"application/vnd.ms-excel": true,
}

var errFileTooLarge = errors.New("file too large")

func trafficFilterFromQuery(w http.ResponseWriter, r *http.Request) (domain.TrafficFilter, bool) {
	q := r.URL.Query()
	filter := domain.TrafficFilter{Page: pageFromQuery(r)}

	var err error
	if filter.AccountID, err = optionalInt64(q.Get("accountId")); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "accountId inválido", nil)
		return filter, false
	}
	if filter.ProjectID, err = optionalInt64(q.Get("projectId")); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "projectId inválido", nil)
		return filter, false
	}
	if filter.StartDate, err = utils.ParseDate(q.Get("startDate")); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "startDate inválido, use AAAA-MM-DD", nil)
		return filter, false
	}
	if filter.EndDate, err = utils.ParseEndDate(q.Get("endDate")); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "endDate inválido, use AAAA-MM-DD", nil)
		return filter, false
	}
	if platform := optionalString(q.Get("platform")); platform != nil {
		p := domain.Platform(*platform)
		filter.Platform = &p
	}

	return filter, true
}

func TrafficList(service insighting.TrafficInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter, ok := trafficFilterFromQuery(w, r)
		if !ok {
			return
		}

		result, err := service.ListTraffic(r.Context(), filter)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao listar dados de tráfego")
			return
		}

		writeOK(w, result)
	})
}

func TrafficDashboard(service insighting.TrafficInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter, ok := trafficFilterFromQuery(w, r)
		if !ok {
			return
		}

		dashboard, err := service.GetDashboard(r.Context(), filter)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao montar o painel de tráfego")
			return
		}

		writeOK(w, dashboard)
	})
}

func TrafficTrend(service insighting.TrafficInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter, ok := trafficFilterFromQuery(w, r)
		if !ok {
			return
		}

		trend, err := service.GetTrend(r.Context(), filter)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao calcular a tendência de tráfego")
			return
		}

		writeOK(w, trend)
	})
}

func ImportRecordList(service insighting.ImportHistory) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		records, err := service.ListImportRecords(r.Context(), pageFromQuery(r))
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao listar importações")
			return
		}

		writeOK(w, records)
	})
}

// readUpload lê o campo "file" do multipart respeitando o limite em bytes
func readUpload(r *http.Request, maxBytes int64) (importing.ImportFile, *multipart.FileHeader, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return importing.ImportFile{}, nil, err
	}
	defer file.Close()

	if header.Size > maxBytes {
		return importing.ImportFile{}, header, errFileTooLarge
	}

	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return importing.ImportFile{}, header, err
	}
	if int64(len(content)) > maxBytes {
		return importing.ImportFile{}, header, errFileTooLarge
	}

	return importing.ImportFile{Name: header.Filename, Content: content}, header, nil
}

func parseUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (importing.ImportFile, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, fmt.Sprintf("Arquivo acima do limite de %d bytes", maxBytes), nil)
			return importing.ImportFile{}, nil, false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Envie o arquivo como multipart/form-data", nil)
		return importing.ImportFile{}, nil, false
	}

	upload, header, err := readUpload(r, maxBytes)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum arquivo enviado", nil)
		return upload, header, false
	case errors.Is(err, errFileTooLarge):
		apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, fmt.Sprintf("Arquivo acima do limite de %d bytes", maxBytes), nil)
		return upload, header, false
	case err != nil:
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler o arquivo enviado", nil)
		return upload, header, false
	}

	return upload, header, true
}

func isCSVUpload(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return true
	}
	mimeType := strings.TrimSpace(strings.Split(header.Header.Get("Content-Type"), ";")[0])
	return csvMimeTypes[strings.ToLower(mimeType)]
}

func isExcelUpload(header *multipart.FileHeader) bool {
	return strings.EqualFold(filepath.Ext(header.Filename), ".xlsx")
}

func importMessage(result *domain.ImportResult) string {
	return fmt.Sprintf("Importação concluída: %d com sucesso, %d com falha", result.SuccessRows, result.FailedRows)
}

// ImportTrafficCSV recebe um CSV com conta e plataforma em cada linha
func ImportTrafficCSV(service importing.Importer, limits config.Import) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		upload, header, ok := parseUpload(w, r, limits.CSVMaxBytes)
		if !ok {
			return
		}

		if !isCSVUpload(header) {
			apiErrors.WriteError(w, apiErrors.ErrUnsupportedFile, "Envie um arquivo .csv", nil)
			return
		}

		projectID, err := optionalInt64(r.FormValue("projectId"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "projectId inválido", nil)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"file_name": upload.Name,
			"user_id":   claims.UserID,
		}).Info("Importação de CSV recebida")

		result, err := service.ImportCSV(r.Context(), upload, projectID, claims.UserID)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao importar CSV")
			return
		}

		writeJSON(w, http.StatusOK, result, importMessage(result))
	})
}

// ImportTrafficExcel recebe uma planilha cujas linhas pertencem todas à conta informada
func ImportTrafficExcel(service importing.Importer, limits config.Import) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		upload, header, ok := parseUpload(w, r, limits.ExcelMaxBytes)
		if !ok {
			return
		}

		if !isExcelUpload(header) {
			apiErrors.WriteError(w, apiErrors.ErrUnsupportedFile, "Envie um arquivo .xlsx", nil)
			return
		}

		accountID, err := optionalInt64(r.FormValue("accountId"))
		if err != nil || accountID == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "accountId é obrigatório", nil)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"file_name":  upload.Name,
			"user_id":    claims.UserID,
			"account_id": *accountID,
		}).Info("Importação de planilha recebida")

		result, err := service.ImportExcel(r.Context(), upload, *accountID, claims.UserID)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao importar planilha")
			return
		}

		writeJSON(w, http.StatusOK, result, importMessage(result))
	})
}
