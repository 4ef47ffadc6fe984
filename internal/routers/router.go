package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ethersheet/internal/api"
	"ethersheet/internal/session"
	"ethersheet/internal/store"
	"ethersheet/internal/utils"
)

func New(log *utils.Logger, registry *session.Registry, users store.UserDirectory, sheets store.SheetStore) http.Handler {
	h := api.NewHandlers(log, registry, users, sheets)
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/v1/healthz", h.Health)
	r.Get("/api/v1/rooms/{id}", h.RoomStatus)

	r.Get("/s/{id}.json", h.GetSheetJSON)
	r.Get("/s/{id}", h.SheetPage)
	r.Post("/save", h.SaveSheet)

	r.Get("/ws", h.SheetWS)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
