package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pushchain/push-raffle-node/relayer/store"
)

const defaultListLimit = 100

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleChains handles GET /api/v1/chains
func (s *Server) handleChains(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, QueryResponse{Data: s.network.Status()})
}

// handleRaffle handles GET /api/v1/raffles/{id}
func (s *Server) handleRaffle(w http.ResponseWriter, r *http.Request) {
	id, ok := s.raffleID(w, r)
	if !ok {
		return
	}
	raffle, err := s.network.TicketRaffle(id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, QueryResponse{Data: raffle})
}

// handlePrize handles GET /api/v1/prizes/{id}
func (s *Server) handlePrize(w http.ResponseWriter, r *http.Request) {
	id, ok := s.raffleID(w, r)
	if !ok {
		return
	}
	prize, err := s.network.PrizeRaffle(id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, QueryResponse{Data: prize})
}

// handleMessages handles GET /api/v1/messages?status=<status>&limit=<n>
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != store.StatusDelivered && status != store.StatusFailed {
		s.writeError(w, http.StatusBadRequest, "status must be delivered or failed")
		return
	}
	limit, ok := s.limit(w, r)
	if !ok {
		return
	}

	msgs, err := s.store.ListMessages(status, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]MessageView, len(msgs))
	for i, m := range msgs {
		views[i] = MessageView{
			MessageID:      m.MessageID,
			SourceSelector: m.SourceSelector,
			DestSelector:   m.DestSelector,
			Sequence:       m.Sequence,
			Opcode:         m.Opcode,
			RaffleID:       m.RaffleID,
			Status:         m.Status,
			Attempts:       m.Attempts,
			DestHeight:     m.DestHeight,
			Error:          m.ErrorMsg,
		}
	}
	s.writeJSON(w, http.StatusOK, QueryResponse{Data: views})
}

// handleFulfillments handles GET /api/v1/fulfillments?limit=<n>
func (s *Server) handleFulfillments(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.limit(w, r)
	if !ok {
		return
	}
	out, err := s.store.ListFulfillments(limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]FulfillmentView, len(out))
	for i, f := range out {
		views[i] = FulfillmentView{
			RequestID:   f.RequestID,
			Consumer:    f.Consumer,
			RandomWord:  f.RandomWord,
			BlockHeight: f.BlockHeight,
			Success:     f.Success,
			Error:       f.ErrorMsg,
		}
	}
	s.writeJSON(w, http.StatusOK, QueryResponse{Data: views})
}

func (s *Server) raffleID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		s.writeError(w, http.StatusBadRequest, "invalid raffle id")
		return 0, false
	}
	return id, true
}

func (s *Server) limit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return n, true
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, ErrorResponse{Error: msg})
}
