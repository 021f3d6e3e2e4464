package auth

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// NewRouter wires the account endpoints. metrics may be nil, in which case
// /metrics is not served.
func NewRouter(svc Service, accounts Repository, m *Metrics, metrics http.Handler) *httprouter.Router {
	router := httprouter.New()
	router.Handler(http.MethodPost, "/signup", SignupHandler(svc, m))
	router.Handler(http.MethodPost, "/signin", SigninHandler(svc, m))
	router.Handler(http.MethodGet, "/healthz", HealthHandler(accounts))
	if metrics != nil {
		router.Handler(http.MethodGet, "/metrics", metrics)
	}
	return router
}
