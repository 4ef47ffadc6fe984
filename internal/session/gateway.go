// Package session holds the collaborative session core: per-sheet rooms, the
// process-wide registry, and the per-connection protocol gateway.
package session

import (
	"context"
	"fmt"

	"ethersheet/internal/metrics"
	"ethersheet/internal/models"
	"ethersheet/internal/store"
	"ethersheet/internal/utils"
)

type connState int

const (
	stateUnjoined connState = iota
	stateJoined
	stateClosed
)

// Gateway owns one connection's protocol state: at most one (user, sheet)
// membership at a time. Inbound events for a single connection are handled
// sequentially by its read loop; separate connections run fully in parallel
// against the shared registry and stores.
type Gateway struct {
	log      *utils.Logger
	registry *Registry
	users    store.UserDirectory
	sheets   store.SheetStore
	client   *Client

	state   connState
	user    models.User
	sheetID string
}

func NewGateway(log *utils.Logger, registry *Registry, users store.UserDirectory, sheets store.SheetStore, client *Client) *Gateway {
	return &Gateway{
		log:      log,
		registry: registry,
		users:    users,
		sheets:   sheets,
		client:   client,
	}
}

// HandleJoin runs the JOIN_ROOM transition: resolve the user, load the sheet
// snapshot, register membership and announce it to the room (joiner included)
// after a private ROOM_JOINED ack. A join while already in a room moves the
// connection: the old room sees a LEFT announce first. On a backend failure
// the connection keeps its previous state and only the caller gets an error
// frame.
func (gw *Gateway) HandleJoin(ctx context.Context, req models.JoinRequest) error {
	if gw.state == stateClosed {
		return nil
	}

	user, err := gw.users.FindOrCreate(ctx, req.UserID)
	if err != nil {
		gw.client.Send(models.ErrorFrame("join failed"))
		return fmt.Errorf("resolve user %q: %w", req.UserID, err)
	}
	sheet, err := gw.sheets.FindOrCreate(ctx, req.SheetID)
	if err != nil {
		gw.client.Send(models.ErrorFrame("join failed"))
		return fmt.Errorf("load sheet %q: %w", req.SheetID, err)
	}

	if gw.state == stateJoined {
		gw.leaveCurrent(ctx)
	}

	// Private ack first so the joiner's UI initializes before the broadcast.
	gw.client.Send(models.WSFrame{Type: models.EventRoomJoined})
	gw.registry.Join(req.SheetID, gw.client, user, models.WSFrame{
		Type: models.EventUserChange,
		Data: models.UserChange{User: user, Action: models.ActionJoined, SheetData: sheet.Data},
	})
	gw.state = stateJoined
	gw.user = user
	gw.sheetID = req.SheetID
	metrics.PresenceEvents.WithLabelValues(models.ActionJoined).Inc()
	return nil
}

// HandleMessage relays an opaque payload to the rest of the room, sender
// excluded. The payload is not inspected or persisted. A message from a
// connection that never joined is answered with an error frame and otherwise
// ignored.
func (gw *Gateway) HandleMessage(payload interface{}) {
	if gw.state != stateJoined {
		gw.client.Send(models.ErrorFrame("not in a room"))
		return
	}
	room, ok := gw.registry.Get(gw.sheetID)
	if !ok {
		return
	}
	room.Relay(gw.client, models.WSFrame{Type: models.EventMessage, Data: payload})
	metrics.RelayedMessages.Inc()
}

// Close runs the disconnect transition. Safe to call for a connection that
// never joined anything.
func (gw *Gateway) Close(ctx context.Context) {
	if gw.state == stateJoined {
		gw.leaveCurrent(ctx)
	}
	gw.state = stateClosed
}

func (gw *Gateway) leaveCurrent(ctx context.Context) {
	data := ""
	if sheet, err := gw.sheets.FindOrCreate(ctx, gw.sheetID); err == nil {
		data = sheet.Data
	} else {
		gw.log.Error("sheet snapshot for departure announce", "sheet_id", gw.sheetID, "error", err.Error())
	}

	announced := gw.registry.Leave(gw.sheetID, gw.client, models.WSFrame{
		Type: models.EventUserChange,
		Data: models.UserChange{User: gw.user, Action: models.ActionLeft, SheetData: data},
	})
	if announced {
		metrics.PresenceEvents.WithLabelValues(models.ActionLeft).Inc()
	}
	gw.state = stateUnjoined
	gw.user = models.User{}
	gw.sheetID = ""
}
