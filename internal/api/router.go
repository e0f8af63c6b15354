package api

import (
	"net/http"

	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	stations ports.StationRepository,
	uploads ports.UploadRepository,
	cache ports.Cache,
	planner services.PlannerConfig,
	uploadDir string,
	wakeIngest func(),
) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Geocoder: geocoder,
		Routes:   routes,
		Stations: stations,
		Cache:    cache,
		Planner:  planner,
	}
	uploadHandler := &handlers.UploadHandler{
		Uploads: uploads,
		Dir:     uploadDir,
		Wake:    wakeIngest,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /trips/plan", tripHandler.Plan)
	mux.HandleFunc("POST /uploads", uploadHandler.Create)
	mux.HandleFunc("GET /uploads/{id}", uploadHandler.Get)

	return requestMiddleware(mux)
}
