package middleware

import (
	"encoding/json"
	"net/http"
)

// denial is the body every access-control rejection carries. Redirect tells
// the frontend where to send the user instead of the page it asked for.
type denial struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSONError(w http.ResponseWriter, status int, msg, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(denial{Error: msg, Redirect: redirect})
}
