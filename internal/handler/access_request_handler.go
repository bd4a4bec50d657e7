package handler

import (
	"access-request-server/internal/model"
	"access-request-server/internal/model/requestresponse"
	"access-request-server/internal/ports"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type AccessRequestHandler struct {
	ports.AccessRequestService
	users ports.UserDirectory
}

func NewAccessRequestHandler(accessRequestService ports.AccessRequestService, users ports.UserDirectory) *AccessRequestHandler {
	return &AccessRequestHandler{accessRequestService, users}
}

// CreateAccessRequest godoc
// @Summary Запрос доступа к закрытой записи
// @Description Создаёт заявку. Анонимному отправителю или отправителю с неподтверждённым email
// @Description приходит письмо с ссылкой подтверждения, иначе заявка сразу уходит владельцу.
// @Description Для вошедшего пользователя используется email аккаунта, поле email игнорируется.
// @Tags AccessRequests
// @Accept json
// @Produce json
// @Param recid path int true "ID записи"
// @Param body body requestresponse.CreateAccessRequestRequest true "Тело запроса"
// @Success 201 {object} requestresponse.AccessRequestResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/records/{recid}/access-requests [post]
func (h *AccessRequestHandler) CreateAccessRequest(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathID(w, r, "recid")
	if !ok {
		return
	}

	var req requestresponse.CreateAccessRequestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	params := model.NewAccessRequestParams{
		ResourceID:     recordID,
		SenderFullName: strings.TrimSpace(req.FullName),
		SenderEmail:    strings.TrimSpace(req.Email),
		Justification:  strings.TrimSpace(req.Justification),
	}

	if userID := currentUserID(r); userID != 0 {
		sender, err := h.users.FindByID(r.Context(), userID)
		if err != nil && !errors.Is(err, model.ErrUserNotFound) {
			handleServiceError(w, err)
			return
		}
		if sender != nil {
			params.Sender = sender
			params.SenderEmail = sender.Email
		}
	}

	request, err := h.AccessRequestService.Create(r.Context(), params)
	if request == nil {
		handleServiceError(w, err)
		return
	}
	logSignalError(err)

	sendJSON(w, http.StatusCreated, requestresponse.AccessRequestResponseFromModel(request))
}

// ConfirmEmail godoc
// @Summary Подтверждение email отправителя заявки
// @Description Переход по ссылке из письма. Повторный переход возвращает 409.
// @Tags AccessRequests
// @Produce json
// @Param token path string true "Токен из письма"
// @Success 200 {object} requestresponse.ConfirmEmailResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Ссылка недействительна или устарела"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже подтверждён"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /access-requests/confirm/{token} [get]
func (h *AccessRequestHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		sendErrorResponse(w, http.StatusBadRequest, "токен обязателен")
		return
	}

	request, err := h.AccessRequestService.ConfirmEmailByToken(r.Context(), token)
	if request == nil {
		var stateErr *model.InvalidRequestStateError
		if errors.As(err, &stateErr) {
			sendErrorResponse(w, http.StatusConflict, "email уже подтверждён")
			return
		}
		handleServiceError(w, err)
		return
	}
	logSignalError(err)

	var resp requestresponse.ConfirmEmailResponse
	resp.Response.Status = string(request.Status)
	resp.Response.Message = "email подтверждён, заявка отправлена владельцу записи"
	sendJSON(w, http.StatusOK, resp)
}

// ListAccessRequests godoc
// @Summary Заявки, адресованные текущему пользователю
// @Tags AccessRequests
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListAccessRequestsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/access-requests [get]
func (h *AccessRequestHandler) ListAccessRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	requests, err := h.AccessRequestService.QueryByReceiver(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var resp requestresponse.ListAccessRequestsResponse
	resp.Data.Requests = make([]requestresponse.AccessRequestResponse, 0, len(requests))
	for i := range requests {
		resp.Data.Requests = append(resp.Data.Requests, requestresponse.AccessRequestResponseFromModel(&requests[i]))
	}
	resp.Count = len(resp.Data.Requests)

	sendJSON(w, http.StatusOK, resp)
}

// GetAccessRequest godoc
// @Summary Заявка по ID
// @Description Доступна только получателю заявки.
// @Tags AccessRequests
// @Produce json
// @Param id path int true "ID заявки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.AccessRequestResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/access-requests/{id} [get]
func (h *AccessRequestHandler) GetAccessRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	request, err := h.AccessRequestService.GetByReceiver(r.Context(), requestID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.AccessRequestResponseFromModel(request))
}

// AcceptAccessRequest godoc
// @Summary Принять заявку
// @Description Переводит заявку в accepted, создаёт секретную ссылку и отправляет её автору заявки.
// @Tags AccessRequests
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param body body requestresponse.DecisionRequest false "Сообщение и срок действия ссылки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.AccessRequestResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Заявка не в состоянии pending"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/access-requests/{id}/accept [post]
func (h *AccessRequestHandler) AcceptAccessRequest(w http.ResponseWriter, r *http.Request) {
	userID, requestID, req, ok := h.decision(w, r)
	if !ok {
		return
	}

	request, err := h.AccessRequestService.Accept(r.Context(), requestID, userID, req.Message, req.ExpiresAt)
	if request == nil {
		handleServiceError(w, err)
		return
	}
	logSignalError(err)

	sendJSON(w, http.StatusOK, requestresponse.AccessRequestResponseFromModel(request))
}

// RejectAccessRequest godoc
// @Summary Отклонить заявку
// @Tags AccessRequests
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param body body requestresponse.DecisionRequest false "Сообщение автору заявки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.AccessRequestResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Заявка не в состоянии pending"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/access-requests/{id}/reject [post]
func (h *AccessRequestHandler) RejectAccessRequest(w http.ResponseWriter, r *http.Request) {
	userID, requestID, req, ok := h.decision(w, r)
	if !ok {
		return
	}

	request, err := h.AccessRequestService.Reject(r.Context(), requestID, userID, req.Message)
	if request == nil {
		handleServiceError(w, err)
		return
	}
	logSignalError(err)

	sendJSON(w, http.StatusOK, requestresponse.AccessRequestResponseFromModel(request))
}

// decision : пустое тело допустимо
func (h *AccessRequestHandler) decision(w http.ResponseWriter, r *http.Request) (int64, int64, requestresponse.DecisionRequest, bool) {
	var req requestresponse.DecisionRequest

	userID, ok := requireUser(w, r)
	if !ok {
		return 0, 0, req, false
	}
	requestID, ok := pathID(w, r, "id")
	if !ok {
		return 0, 0, req, false
	}

	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			log.Printf("[AccessRequestHandler] некорректное тело решения по заявке %d: %v", requestID, err)
			return 0, 0, req, false
		}
	}

	return userID, requestID, req, true
}
