package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentmesh/agent-endpoint/pkg/usecase"
	"github.com/agentmesh/agent-endpoint/pkg/utils/errutil"
)

// messageHandler accepts a user message, appends it to the shared
// conversation log and returns the agent reply. Validation failures are
// in-band; store faults surface as 500.
func messageHandler(chat *usecase.ChatUseCase) http.HandlerFunc {
	type request struct {
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		// An undecodable body leaves Message empty and fails
		// validation below, same as an absent field.
		_ = json.NewDecoder(r.Body).Decode(&req)

		reply, err := chat.HandleMessage(r.Context(), req.Message)
		if err != nil {
			if errors.Is(err, usecase.ErrMissingMessage) {
				respondInBandError(w, r, err)
				return
			}
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		respondJSON(w, r, reply)
	}
}

// setFactHandler proxies a fact write to the backend. Both validation
// and upstream failures are reported in-band.
func setFactHandler(fact *usecase.FactUseCase) http.HandlerFunc {
	type request struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		_ = json.NewDecoder(r.Body).Decode(&req)

		if err := fact.SetFact(r.Context(), req.Key, req.Value); err != nil {
			respondInBandError(w, r, err)
			return
		}

		respondJSON(w, r, map[string]string{"status": "ok"})
	}
}

// getFactHandler proxies a fact read to the backend. A fact the
// backend does not hold comes back as a null value, not an error.
func getFactHandler(fact *usecase.FactUseCase) http.HandlerFunc {
	type response struct {
		Value any `json:"value"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		value, err := fact.GetFact(r.Context(), key)
		if err != nil {
			respondInBandError(w, r, err)
			return
		}

		respondJSON(w, r, response{Value: value})
	}
}
