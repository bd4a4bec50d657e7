package handler

import (
	"access-request-server/internal/model"
	"access-request-server/internal/model/requestresponse"
	"access-request-server/internal/security"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// decodeJSON : при ошибке сам пишет 400
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return err
	}
	return nil
}

func sendJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[Handler] не удалось записать ответ: %v", err)
	}
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	sendJSON(w, statusCode, requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}

// handleServiceError : переводит доменные ошибки в HTTP-статусы
func handleServiceError(w http.ResponseWriter, err error) {
	var stateErr *model.InvalidRequestStateError
	switch {
	case errors.As(err, &stateErr):
		sendErrorResponse(w, http.StatusBadRequest, stateErr.Error())
	case errors.Is(err, model.ErrRequestNotFound):
		sendErrorResponse(w, http.StatusNotFound, "заявка не найдена")
	case errors.Is(err, model.ErrLinkNotFound):
		sendErrorResponse(w, http.StatusNotFound, "ссылка не найдена")
	case errors.Is(err, model.ErrRecordNotFound):
		sendErrorResponse(w, http.StatusNotFound, "запись не найдена")
	case errors.Is(err, security.ErrSignatureExpired):
		sendErrorResponse(w, http.StatusNotFound, "срок действия ссылки истёк")
	case errors.Is(err, security.ErrInvalidToken):
		sendErrorResponse(w, http.StatusNotFound, "ссылка недействительна")
	case errors.Is(err, model.ErrInvalidInput):
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrForbidden):
		sendErrorResponse(w, http.StatusForbidden, "доступ запрещён")
	default:
		log.Printf("[Handler] %v", err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

// logSignalError : изменение уже сохранено, упал только получатель сигнала
func logSignalError(err error) {
	if err != nil {
		log.Printf("[Handler] изменение сохранено, но обработка сигнала завершилась ошибкой: %v", err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный идентификатор "+name)
		return 0, false
	}
	return id, true
}

// currentUserID : 0 для анонимного запроса
func currentUserID(r *http.Request) int64 {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		return 0
	}
	return claims.UserID
}

func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID := currentUserID(r)
	if userID == 0 {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	return userID, true
}
