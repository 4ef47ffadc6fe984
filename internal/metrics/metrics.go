// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ethersheet_open_connections",
		Help: "Live WebSocket connections.",
	})

	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ethersheet_active_rooms",
		Help: "Rooms with at least one member.",
	})

	PresenceEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ethersheet_presence_events_total",
		Help: "USER_CHANGE broadcasts by action.",
	}, []string{"action"})

	DroppedFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ethersheet_dropped_frames_total",
		Help: "Frames that could not be written to a client connection.",
	})

	RelayedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ethersheet_relayed_messages_total",
		Help: "Opaque MESSAGE frames relayed between room members.",
	})

	SheetSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ethersheet_sheet_saves_total",
		Help: "Accepted sheet save requests.",
	})
)
