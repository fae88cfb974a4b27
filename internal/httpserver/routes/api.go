package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
	"github.com/alarmbridge/alarmbridge/internal/httpserver/handlers"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/ucrs", handlers.UCRs(d))
		r.Post("/refresh", handlers.Refresh(d))

		r.Route("/ucr/{ucr}", func(r chi.Router) {
			r.Get("/user", handlers.User(d))
			r.Get("/status", handlers.Status(d))
			r.Post("/status", handlers.SetStatus(d))
			r.Get("/alarm", handlers.Alarm(d))
			r.Get("/news", handlers.News(d))
			r.Get("/events", handlers.Events(d))
			r.Get("/vehicles", handlers.Vehicles(d))
			r.Get("/snapshot", handlers.RawSnapshot(d))
			r.Delete("/snapshot", handlers.DeleteSnapshot(d))
		})
	})
}
