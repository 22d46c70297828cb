package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// PostViewsTotal counts detail views that incremented a post's counter.
	PostViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_post_views_total",
		Help: "Total number of post detail views",
	})

	// LikeTogglesTotal counts like toggles by resulting state.
	LikeTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_like_toggles_total",
		Help: "Total number of like toggles by result",
	}, []string{"result"})

	// LikeToggleRetries counts toggles retried after a uniqueness conflict.
	LikeToggleRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_like_toggle_retries_total",
		Help: "Total number of like toggles retried after a concurrent insert",
	})

	// CommentsTotal counts comment mutations by action.
	CommentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_comments_total",
		Help: "Total number of comment mutations by action",
	}, []string{"action"})

	// WebSocketConnections is the gauge of live event subscribers.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inkwell_websocket_connections",
		Help: "Number of active live event WebSocket connections",
	})

	// WebSocketBackpressureDrops counts events dropped for slow subscribers.
	WebSocketBackpressureDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_websocket_backpressure_drops_total",
		Help: "Total number of live events dropped due to backpressure",
	})
)
