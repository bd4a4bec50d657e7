package handler

import (
	"access-request-server/internal/ports"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type RecordFileHandler struct {
	ports.RecordFileService
}

func NewRecordFileHandler(recordFileService ports.RecordFileService) *RecordFileHandler {
	return &RecordFileHandler{recordFileService}
}

// DownloadFile godoc
// @Summary Скачать файл записи
// @Description Открытая запись доступна всем. Закрытая владельцу (Bearer JWT) или по токену секретной ссылки.
// @Description Отвечает редиректом на pre-signed URL в S3.
// @Tags Records
// @Param recid path int true "ID записи"
// @Param key path string true "Имя файла"
// @Param token query string false "Токен секретной ссылки"
// @Success 302 "Редирект на файл"
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /records/{recid}/files/{key} [get]
func (h *RecordFileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathID(w, r, "recid")
	if !ok {
		return
	}

	token := r.URL.Query().Get("token")
	if header := r.Header.Get("X-Secret-Link"); token == "" && header != "" {
		token = strings.TrimSpace(header)
	}

	url, err := h.RecordFileService.DownloadURL(r.Context(), recordID, chi.URLParam(r, "key"), token, currentUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
