package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gatherly/gatherly_api/util"
	"github.com/gatherly/gatherly_api/util/tracing"
)

type ServerResponse struct {
	Message    string      `json:"message"`
	Status     string      `json:"status"`
	StatusCode int         `json:"-"`
	Data       interface{} `json:"data,omitempty"`
}

func respondWithError(err error, message string, status string, tc *tracing.Context) *ServerResponse {
	if tc != nil {
		log.Printf("[%s] %s: %v", tc.RequestID, message, err)
	} else {
		log.Printf("%s: %v", message, err)
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Printf("unable to write response body: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error, status string, message string) {
	log.Printf("%s: %v", message, err)
	body, marshalErr := json.Marshal(ServerResponse{
		Message: message,
		Status:  status,
	})
	if marshalErr != nil {
		http.Error(w, message, util.StatusCode(status))
		return
	}
	writeJSONResponse(w, body, util.StatusCode(status))
}
