package v1alpha1

import "net/http"

// HealthRoute answers liveness probes
const HealthRoute = "GET /healthz"

// HealthResponse is the JSON body returned by the health route
type HealthResponse struct {
	Status string `json:"status"`
}

// Healthz reports that the process is serving
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &HealthResponse{Status: "ok"})
}
