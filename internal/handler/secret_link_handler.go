package handler

import (
	"access-request-server/internal/model"
	"access-request-server/internal/model/requestresponse"
	"access-request-server/internal/ports"
	"log"
	"net/http"
	"strings"
	"time"
)

type SecretLinkHandler struct {
	ports.SecretLinkService
	records      ports.RecordResolver
	linkEndpoint string
	now          func() time.Time
}

func NewSecretLinkHandler(secretLinkService ports.SecretLinkService, records ports.RecordResolver, linkEndpoint string) *SecretLinkHandler {
	return &SecretLinkHandler{
		SecretLinkService: secretLinkService,
		records:           records,
		linkEndpoint:      linkEndpoint,
		now:               time.Now,
	}
}

// ListSecretLinks godoc
// @Summary Секретные ссылки текущего пользователя
// @Description Возвращает все выданные ссылки, включая отозванные и истёкшие.
// @Tags SecretLinks
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListSecretLinksResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/links [get]
func (h *SecretLinkHandler) ListSecretLinks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	links, err := h.SecretLinkService.QueryByOwner(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	now := h.now()
	var resp requestresponse.ListSecretLinksResponse
	resp.Data.Links = make([]requestresponse.SecretLinkResponse, 0, len(links))
	for i := range links {
		resp.Data.Links = append(resp.Data.Links, requestresponse.SecretLinkResponseFromModel(&links[i], h.linkURL(&links[i]), now))
	}
	resp.Count = len(resp.Data.Links)

	sendJSON(w, http.StatusOK, resp)
}

// CreateSecretLink godoc
// @Summary Создать секретную ссылку на свою запись
// @Tags SecretLinks
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateSecretLinkRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.SecretLinkResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Запись принадлежит другому пользователю"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/links [post]
func (h *SecretLinkHandler) CreateSecretLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req requestresponse.CreateSecretLinkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(h.now()) {
		sendErrorResponse(w, http.StatusBadRequest, "expires_at должен быть в будущем")
		return
	}

	record, err := h.records.GetRecord(r.Context(), req.RecordID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if record == nil {
		handleServiceError(w, &model.RecordNotFoundError{ResourceID: req.RecordID})
		return
	}
	if record.OwnerUserID != userID {
		handleServiceError(w, model.ErrForbidden)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = record.Title
	}

	link, err := h.SecretLinkService.Create(r.Context(), model.NewSecretLinkParams{
		Title:       title,
		OwnerUserID: userID,
		ExtraData:   map[string]any{"resource_id": record.ID},
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
	})
	if link == nil {
		handleServiceError(w, err)
		return
	}
	logSignalError(err)

	sendJSON(w, http.StatusCreated, requestresponse.SecretLinkResponseFromModel(link, h.linkURL(link), h.now()))
}

// RevokeSecretLink godoc
// @Summary Отозвать секретную ссылку
// @Description Повторный отзыв не ошибка, возвращает revoked=false.
// @Tags SecretLinks
// @Produce json
// @Param id path int true "ID ссылки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.RevokeResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/links/{id} [delete]
func (h *SecretLinkHandler) RevokeSecretLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	linkID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	revoked, err := h.SecretLinkService.RevokeOwned(r.Context(), linkID, userID)
	if err != nil && !revoked {
		handleServiceError(w, err)
		return
	}
	logSignalError(err)

	var resp requestresponse.RevokeResponse
	resp.Response.Revoked = revoked
	sendJSON(w, http.StatusOK, resp)
}

func (h *SecretLinkHandler) linkURL(link *model.SecretLink) string {
	url, err := h.SecretLinkService.AbsoluteURL(link, h.linkEndpoint)
	if err != nil {
		log.Printf("[SecretLinkHandler] не удалось построить ссылку %d: %v", link.ID, err)
		return ""
	}
	return url
}
