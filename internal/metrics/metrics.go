package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Dispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_dispatches_total",
		Help: "Inbound commands by front-end and outcome",
	}, []string{"frontend", "result"})

	SinkExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_sink_executions_total",
		Help: "Console commands executed by the sink",
	}, []string{"status"})

	SinkExecutionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridge_sink_execution_duration_seconds",
		Help:    "Duration of console command executions",
		Buckets: prometheus.DefBuckets,
	})

	SinkQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bridge_sink_queue_depth",
		Help: "Console commands waiting for a worker",
	})

	SinkRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_sink_rejected_total",
		Help: "Console commands rejected before execution",
	}, []string{"reason"})

	Reloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_reloads_total",
		Help: "Registry reloads by status",
	}, []string{"status"})

	CommandsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bridge_commands_loaded",
		Help: "Commands in the active registry snapshot",
	})

	CommandPublishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_command_publishes_total",
		Help: "Slash command registrations by status",
	}, []string{"status"})

	DiscordMessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_sent_total",
		Help: "Total number of Discord messages sent",
	}, []string{"kind", "status"})
)
