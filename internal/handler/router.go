package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	catalogHandler "github.com/zhouzirui/restaurant-stars/backend/internal/handler/catalog"
	eventsHandler "github.com/zhouzirui/restaurant-stars/backend/internal/handler/events"
	starredHandler "github.com/zhouzirui/restaurant-stars/backend/internal/handler/starred"
	middlewarePkg "github.com/zhouzirui/restaurant-stars/backend/internal/middleware"
	catalogModel "github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
	eventService "github.com/zhouzirui/restaurant-stars/backend/internal/service/events"
	starredService "github.com/zhouzirui/restaurant-stars/backend/internal/service/starred"
	"github.com/zhouzirui/restaurant-stars/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. hub may be nil, in which case
// the event stream endpoints are not registered.
func NewRouter(restaurants catalogModel.Store, starredSvc *starredService.Service, hub *eventService.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"starred": starredSvc.Count(),
		})
	})

	r.Route("/api", func(api chi.Router) {
		catalogHandler.New(restaurants).RegisterRoutes(api)
		starredHandler.New(starredSvc).RegisterRoutes(api)

		if hub != nil {
			eventsHandler.New(hub).RegisterRoutes(api)
		}
	})

	return r
}
