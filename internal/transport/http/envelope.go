package http

import (
	"encoding/json"
	"net/http"
	"time"
)

// envelope is the response convention every endpoint follows:
// {ok, data?, message?, exists?, expiresAt?}.
type envelope struct {
	OK        bool       `json:"ok"`
	Data      any        `json:"data,omitempty"`
	Message   string     `json:"message,omitempty"`
	Exists    *bool      `json:"exists,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{OK: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{OK: false, Message: message})
}
