package api

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"ethersheet/internal/metrics"
	"ethersheet/internal/models"
	"ethersheet/internal/session"
	"ethersheet/internal/store"
	"ethersheet/internal/utils"
)

type Handlers struct {
	log      *utils.Logger
	registry *session.Registry
	users    store.UserDirectory
	sheets   store.SheetStore
}

func NewHandlers(log *utils.Logger, registry *session.Registry, users store.UserDirectory, sheets store.SheetStore) *Handlers {
	return &Handlers{
		log:      log,
		registry: registry,
		users:    users,
		sheets:   sheets,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

// GetSheetJSON serves the raw sheet snapshot, creating the sheet on first
// access.
func (h *Handlers) GetSheetJSON(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	sheet, err := h.sheets.FindOrCreate(r.Context(), sheetID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrEmptyID) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(sheet.Data))
}

// SaveSheet overwrites a sheet's data and echoes the sheet id back, as the
// original client expects. Saving does not require room membership.
func (h *Handlers) SaveSheet(w http.ResponseWriter, r *http.Request) {
	sheetID := r.FormValue("sheet_id")
	data := r.FormValue("sheet_data")
	if err := h.sheets.Save(r.Context(), sheetID, data); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrEmptyID) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	metrics.SheetSaves.Inc()
	_, _ = w.Write([]byte(sheetID))
}

var sheetPage = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html>
<head><title>ethersheet</title></head>
<body>
<div id="sheet" data-sheet-id="{{.SheetID}}" data-ws-path="{{.WSPath}}"></div>
<script src="/es_client/app.js"></script>
</body>
</html>
`))

// SheetPage serves the view shell that boots the client against one sheet.
func (h *Handlers) SheetPage(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = sheetPage.Execute(w, map[string]string{"SheetID": sheetID, "WSPath": "/ws"})
}

// RoomStatus lists who is present on a sheet right now.
func (h *Handlers) RoomStatus(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	writeJSON(w, models.RoomStatus{SheetID: sheetID, Members: h.registry.MembersOf(sheetID)})
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// SheetWS upgrades the connection and runs its gateway event loop. Frames
// from one connection are handled in order; the loop does not read the next
// frame until the current transition finishes. Disconnect, however abrupt,
// still runs the leave path.
func (h *Handlers) SheetWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	metrics.OpenConnections.Inc()
	defer metrics.OpenConnections.Dec()

	client := session.NewClient(conn)
	gw := session.NewGateway(h.log, h.registry, h.users, h.sheets, client)
	// The request context dies with the socket; the departure announce still
	// needs to read the sheet.
	defer gw.Close(context.Background())

	for {
		var frame models.WSFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		switch frame.Type {
		case models.EventJoinRoom:
			var req models.JoinRequest
			marshal(frame.Data, &req)
			if err := gw.HandleJoin(r.Context(), req); err != nil {
				h.log.Error("join failed", "sheet_id", req.SheetID, "user_id", req.UserID, "error", err.Error())
			}
		case models.EventMessage:
			gw.HandleMessage(frame.Data)
		default:
			client.Send(models.ErrorFrame("unknown_type"))
		}
	}
}

func marshal(in any, out any) { b, _ := json.Marshal(in); _ = json.Unmarshal(b, out) }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
