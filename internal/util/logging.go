package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

// HandleError : ответ об ошибке в формате {"error": {"code", "text"}} для middleware,
// которым недоступны DTO обработчиков
func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	type errorDetail struct {
		Code int    `json:"code"`
		Text string `json:"text"`
	}
	errorResponse := struct {
		Error errorDetail `json:"error"`
	}{
		Error: errorDetail{Code: statusCode, Text: message},
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("[HandleError] не удалось записать ответ: %v", err)
	}
}
