package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
)

type TripHandler struct {
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Stations ports.StationRepository
	Cache    ports.Cache
	Planner  services.PlannerConfig
}

// Plan runs the full trip planning pipeline for one start/end pair.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	plan, err := services.PlanTrip(r.Context(),
		services.PlanTripRequest{Start: req.Start, End: req.End},
		h.Geocoder, h.Routes, h.Stations, h.Cache, h.Planner)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	stops := make([]dto.StopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.StopResponse{
			Name:           s.Name,
			PricePerGallon: s.RetailPrice,
			MileMarker:     s.MileMarker,
			Lat:            s.Lat,
			Lon:            s.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, dto.TripResponse{
		Start:              plan.Start,
		End:                plan.End,
		TotalDistanceMiles: plan.TotalDistanceMiles,
		TotalFuelCostUSD:   plan.TotalFuelCostUSD,
		OptimizedStops:     stops,
		Map:                plan.Map,
	})
}
