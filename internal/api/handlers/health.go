package handlers

import "net/http"

// Health is the liveness check.
func Health(w http.ResponseWriter, r *http.Request) {
	if allowMethod(w, r, http.MethodGet) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
