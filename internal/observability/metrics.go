package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application-level metrics. HTTP-level metrics come from fiberprometheus;
// these cover the parts it cannot see.
var (
	// SideEffectsDispatched counts post-commit hooks handed to the dispatcher.
	SideEffectsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snsapp_side_effects_dispatched_total",
		Help: "Post-commit side effects dispatched to the worker pool",
	}, []string{"kind"})

	// SideEffectsDropped counts hooks rejected because the queue was full.
	SideEffectsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snsapp_side_effects_dropped_total",
		Help: "Post-commit side effects dropped due to a full dispatch queue",
	})

	// AIRequestFailures counts failed calls to the generation server.
	AIRequestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snsapp_ai_request_failures_total",
		Help: "Failed requests to the AI generation server",
	}, []string{"endpoint"})

	// CounterUnderflow counts denormalized counters observed below zero after a
	// decrement. A nonzero value is a data-integrity bug somewhere upstream.
	CounterUnderflow = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snsapp_counter_underflow_total",
		Help: "Denormalized counters observed negative after a decrement",
	}, []string{"counter"})

	// RedisErrors counts cache operation failures by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snsapp_redis_errors_total",
		Help: "Redis command failures",
	}, []string{"command"})
)
