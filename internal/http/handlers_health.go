package httpx

import "net/http"

// healthHandler answers load-balancer health checks. It reports process liveness
// only and never touches the backend; a gateway whose backend is down can
// still serve pages and redirects, so it stays in rotation.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(`{"status":"ok","service":"gateway"}`))
}
