// Package metrics exposes prometheus counters for the state stores and the
// realtime channel.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hooks_cart_mutations_total",
		Help: "Cart store mutations by operation.",
	}, []string{"op"})

	NotificationsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hooks_notifications_added_total",
		Help: "Notifications added to the feed, local and channel-delivered.",
	})

	ChannelEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hooks_channel_events_total",
		Help: "Realtime channel events by outcome.",
	}, []string{"outcome"})

	SnapshotWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hooks_snapshot_write_failures_total",
		Help: "Notification snapshot writes that failed (soft errors).",
	})
)
