package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/vigil/liveness"
	"github.com/xmidt-org/vigil/vitals"
)

// newRouter assembles the monitored server's routes:  the liveness endpoint
// at the root, vitals, and prometheus exposition.  Everything the liveness
// handler needs arrives through parameters; there is no ambient state.
func newRouter(o *liveness.Options, logger log.Logger, registry *prometheus.Registry, monitor *vitals.Vitals) http.Handler {
	var (
		metrics = liveness.NewMetrics(registry)

		router = mux.NewRouter()
		chain  = alice.New(
			metrics.Instrument(),
			liveness.Busy(logger, o.MaxConcurrentRequests),
			vitals.CountRequests(monitor),
		)
	)

	router.Handle("/", chain.Then(liveness.Handler{Greeting: o.Greeting})).Methods("GET")
	router.Handle("/stats", monitor).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")

	return router
}
