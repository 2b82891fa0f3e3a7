// Package metrics expõe contadores Prometheus da API e do serviço ws.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sanicontrol"

type Metrics struct {
	Registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New cria um registry próprio (sem o global) com os coletores de runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por método, rota e status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	route := Route(path)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// TrackClients publica o número de websockets conectados.
func (m *Metrics) TrackClients(count func() int) {
	m.Registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_clients",
		Help:      "Painéis conectados ao serviço ws.",
	}, func() float64 { return float64(count()) }))
}

// routes são os caminhos fixos servidos pela API e pelo ws.
var routes = map[string]bool{
	"/healthz":            true,
	"/metrics":            true,
	"/ws":                 true,
	"/api/companies":      true,
	"/api/licenses":       true,
	"/api/dashboard":      true,
	"/api/reports":        true,
	"/api/preferences":    true,
	"/api/backup":         true,
	"/api/backup/restore": true,
	"/api/system/data":    true,
}

// OtherRoute agrupa todo caminho desconhecido num único rótulo.
const OtherRoute = "other"

// Route troca o id de /api/{recurso}/{id} por {id} e junta caminhos
// desconhecidos em OtherRoute, para a cardinalidade dos rótulos ficar fixa.
func Route(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 3 && parts[0] == "api" && parts[2] != "" && (parts[1] == "companies" || parts[1] == "licenses") {
		return "/api/" + parts[1] + "/{id}"
	}
	if r := "/" + strings.Join(parts, "/"); routes[r] {
		return r
	}
	return OtherRoute
}
