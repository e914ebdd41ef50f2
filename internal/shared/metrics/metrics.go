package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alliance_planner"

var (
	// CodecDecodes 按成功解析的格式计数，回落到旧格式时能在这里看到。
	CodecDecodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "codec_decode_total",
		Help:      "Decoded layout payloads by format.",
	}, []string{"format"})

	CodecFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "codec_decode_failed_total",
		Help:      "Layout payloads no format could decode.",
	})

	BoardCommits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "board_commits_total",
		Help:      "Registry commits by event.",
	}, []string{"event"})

	BoardRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "board_rejects_total",
		Help:      "Rejected actions by error code.",
	}, []string{"code"})

	ActiveBoards = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "boards_active",
		Help:      "Board actors currently running.",
	})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections",
		Help:      "Open websocket connections.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	WSDispatch = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ws_dispatch_seconds",
		Help:      "Websocket route latency by route and biz code.",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
	}, []string{"route", "code"})
)
