package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardvault/cardvault-server/internal/dto"
	"github.com/cardvault/cardvault-server/internal/http/response"
)

// SeriesRequest is the request body for creating or replacing a series.
type SeriesRequest struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	ReleaseYear int      `json:"release_year"`
	ImageURL    string   `json:"image_url,omitempty"`
	Expansions  []string `json:"expansions"`
}

// handleCreateSeries creates a new series from the request body.
func (s *Server) handleCreateSeries(w http.ResponseWriter, r *http.Request) {
	var req SeriesRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	cmd, err := dto.NewCreateSeriesCommand(req.Code, req.Name, req.ReleaseYear, req.ImageURL, req.Expansions)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	series, err := s.seriesService.Create(r.Context(), cmd)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, series, s.logger)
}

// handleListSeries returns a paginated list of series. Page numbers in the
// query are one-based.
func (s *Server) handleListSeries(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePageParams(r)

	result, err := s.seriesService.List(r.Context(), page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list series", "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}

// handleGetSeries returns a single series by ID.
func (s *Server) handleGetSeries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Series ID is required", s.logger)
		return
	}

	series, err := s.seriesService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, series, s.logger)
}

// handleGetSeriesByCode returns a single series by its catalog code.
func (s *Server) handleGetSeriesByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		response.BadRequest(w, "Series code is required", s.logger)
		return
	}

	series, err := s.seriesService.GetByCode(r.Context(), code)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, series, s.logger)
}

// handleUpdateSeries replaces the series identified by the URL. The body
// carries no identifier; the URL is the single source of truth for the
// target.
func (s *Server) handleUpdateSeries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Series ID is required", s.logger)
		return
	}

	var req SeriesRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	cmd, err := dto.NewUpdateSeriesCommand(req.Code, req.Name, req.ReleaseYear, req.ImageURL, req.Expansions)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	series, err := s.seriesService.Update(r.Context(), id, cmd)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, series, s.logger)
}

// handleDeleteSeries removes the series identified by the URL.
func (s *Server) handleDeleteSeries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Series ID is required", s.logger)
		return
	}

	if err := s.seriesService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
