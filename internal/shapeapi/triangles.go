package shapeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/linnemanlabs/trigon/internal/classify"
)

type classifyRequest struct {
	Sides []json.Number `json:"sides"`
}

type listResponse struct {
	Triangles []*classify.Record `json:"triangles"`
}

func (a *API) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.Sides) != 3 {
		writeError(w, http.StatusBadRequest, "sides must hold exactly three lengths")
		return
	}

	var sides [3]string
	for i, n := range req.Sides {
		sides[i] = n.String()
	}

	rec, err := a.svc.Classify(r.Context(), sides)
	switch {
	case errors.Is(err, classify.ErrBadMeasurement), errors.Is(err, classify.ErrFractionalDisabled):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		a.logger.Error(r.Context(), err, "failed to classify triangle", "sides", sides)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Location", "/api/v1/triangles/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	recs, err := a.svc.Recent(r.Context(), limit)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list classification records")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if recs == nil {
		recs = []*classify.Record{}
	}

	writeJSON(w, http.StatusOK, listResponse{Triangles: recs})
}
