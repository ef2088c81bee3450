// Package metrics exposes Prometheus instrumentation for the realtime layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OnlineUsers tracks how many users currently hold a live connection.
	OnlineUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_online_users",
			Help: "Number of users with an active websocket connection",
		},
	)

	// MessagesSent counts durably persisted messages.
	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_sent_total",
			Help: "Total messages persisted through the send-message path",
		},
	)

	// LivePushes counts live-push outcomes by result (delivered, offline, failed).
	LivePushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_live_pushes_total",
			Help: "Live message pushes by delivery outcome",
		},
		[]string{"outcome"},
	)

	// DecryptFailures counts messages that fell back to the placeholder text.
	DecryptFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_decrypt_failures_total",
			Help: "Message bodies that could not be decrypted on read",
		},
	)

	// NotificationPushes counts realtime notification deliveries by outcome.
	NotificationPushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_pushes_total",
			Help: "Realtime notification pushes by delivery outcome",
		},
		[]string{"outcome"},
	)
)
