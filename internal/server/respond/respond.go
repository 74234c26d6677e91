// Package respond writes the JSON response envelope shared by every
// endpoint. A body is always {"result": "SUCCESS"|"FAIL", ...}: successes
// carry data, failures carry errorCode and message.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"account-service/internal/apperr"
)

const (
	ResultSuccess = "SUCCESS"
	ResultFail    = "FAIL"
)

// CommonResponse is the envelope for every JSON response.
type CommonResponse struct {
	Result    string      `json:"result"`
	Data      interface{} `json:"data,omitempty"`
	ErrorCode string      `json:"errorCode,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// OK writes a SUCCESS envelope with data and a 200 status.
func OK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, CommonResponse{Result: ResultSuccess, Data: data})
}

// Fail writes a FAIL envelope for err. Known error codes map to their HTTP
// status; anything else is logged and reported as COMMON_SYSTEM_ERROR so
// internal detail never reaches the client.
func Fail(w http.ResponseWriter, err error, log *zap.Logger) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		log.Error("unhandled error", zap.Error(err))
		e = apperr.New(apperr.CodeSystemError, "internal server error")
	}
	writeJSON(w, StatusOf(e.Code), CommonResponse{Result: ResultFail, ErrorCode: string(e.Code), Message: e.Message})
}

// StatusOf maps an error code to its HTTP status.
func StatusOf(code apperr.Code) int {
	switch code {
	case apperr.CodeInvalidParameter, apperr.CodeChallengeNotFound, apperr.CodeChallengeMismatch:
		return http.StatusBadRequest
	case apperr.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case apperr.CodeInvalidToken:
		return http.StatusForbidden
	case apperr.CodeUserNotFound:
		return http.StatusNotFound
	case apperr.CodeUserAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body CommonResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
