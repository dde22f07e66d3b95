package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orcalab/speed/pkg/errors"
	"github.com/orcalab/speed/pkg/pipeline"
	"github.com/orcalab/speed/pkg/store"
)

// createRequest is the body for POST /v1/descriptions.
type createRequest struct {
	// Name labels the stored description. Defaults to the network name
	// from the snapshot.
	Name string `json:"name,omitempty"`

	// Snapshot is the TOML snapshot content.
	Snapshot string `json:"snapshot"`

	// Extraction options
	Weights bool `json:"weights"`
	Params  bool `json:"params"`
	Refresh bool `json:"refresh,omitempty"`
}

// listResponse is the body for GET /v1/descriptions.
type listResponse struct {
	Descriptions []*store.Record `json:"descriptions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Snapshot == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "snapshot is required"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		SnapshotData: []byte(req.Snapshot),
		Weights:      req.Weights,
		Params:       req.Params,
		Refresh:      req.Refresh,
		SkipSave:     true,
		Logger:       s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	name := req.Name
	if name == "" {
		name = result.Network.Name()
	}

	rec, err := s.store.Put(r.Context(), name, result.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []*store.Record{}
	}
	s.writeJSON(w, http.StatusOK, listResponse{Descriptions: records})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
