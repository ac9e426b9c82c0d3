// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/meterio/meter-auction/api/auction"
	"github.com/meterio/meter-auction/api/events"
	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/node"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New return api router. A nil gatherer leaves /metrics unmounted.
func New(n *node.Node, logDB *logdb.LogDB, allowedOrigins string, gatherer prometheus.Gatherer) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	auction.New(n).
		Mount(router, "/auction")
	if logDB != nil {
		events.New(logDB).
			Mount(router, "/events")
	}
	if gatherer != nil {
		router.Path("/metrics").Methods("GET").Handler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}))(router).ServeHTTP
}
