package notification

import (
	"context"
	"time"

	"github.com/studiokita/ops-dashboard/internal/core/events"
	"github.com/studiokita/ops-dashboard/internal/role"
)

// RoleChangeMessage is the payload pushed to connected dashboards when a
// role definition changes, so open role panels can refresh their list.
type RoleChangeMessage struct {
	Type      string                 `json:"type"`
	EventID   string                 `json:"event_id"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// SubscribeRoleEvents forwards role lifecycle events from the bus to every
// connected websocket session.
func SubscribeRoleEvents(bus *events.EventBus, hub *Hub) {
	forward := func(ctx context.Context, event events.Event) error {
		msg := RoleChangeMessage{
			Type:      event.EventType(),
			EventID:   event.EventID(),
			Timestamp: event.OccurredAt(),
		}
		if data, ok := event.Payload().(map[string]interface{}); ok {
			msg.Data = data
		}
		return hub.BroadcastJSON(msg)
	}

	bus.Subscribe(role.EventRoleCreated, forward)
	bus.Subscribe(role.EventRoleUpdated, forward)
	bus.Subscribe(role.EventRoleDeleted, forward)
}
