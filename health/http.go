package health

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// LivenessHandler returns an HTTP handler for the aggregate liveness probe.
// Responds 200 when every target is live and 500 otherwise. The body carries
// no diagnostic content; causes are log/trace only.
func LivenessHandler(c Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.Live() {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}

// ReadinessHandler returns an HTTP handler for the aggregate readiness probe.
// Responds 200 when every target is ready and 503 otherwise. The body carries
// no diagnostic content.
func ReadinessHandler(c Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.Ready() {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}
}

// TargetsResponse is the JSON response for the per-target status endpoint.
type TargetsResponse struct {
	Live    bool           `json:"live"`
	Ready   bool           `json:"ready"`
	Targets []TargetStatus `json:"targets"`
}

// TargetsHandler returns an HTTP handler with a per-target flag snapshot.
// Unlike the two probe endpoints this one is informational and always 200.
func TargetsHandler(c Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := TargetsResponse{
			Live:    c.Live(),
			Ready:   c.Ready(),
			Targets: c.Targets(),
		}

		data, err := sonic.Marshal(response)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// RegisterHandlers registers all health endpoints on the given mux.
func RegisterHandlers(mux *http.ServeMux, c Checker) {
	mux.HandleFunc("/live", LivenessHandler(c))
	mux.HandleFunc("/ready", ReadinessHandler(c))
	mux.HandleFunc("/targets", TargetsHandler(c))
}
