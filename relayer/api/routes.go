package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes for the API server
func (s *Server) setupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/chains", s.handleChains).Methods(http.MethodGet)
	v1.HandleFunc("/raffles/{id:[0-9]+}", s.handleRaffle).Methods(http.MethodGet)
	v1.HandleFunc("/prizes/{id:[0-9]+}", s.handlePrize).Methods(http.MethodGet)
	v1.HandleFunc("/messages", s.handleMessages).Methods(http.MethodGet)
	v1.HandleFunc("/fulfillments", s.handleFulfillments).Methods(http.MethodGet)

	tx := v1.PathPrefix("/tx").Subrouter()
	tx.Handle("/fund", txHandler(s, "fund", s.network.Fund)).Methods(http.MethodPost)
	tx.Handle("/prizes/mint", txHandler(s, "mint_prize", s.network.MintPrize)).Methods(http.MethodPost)
	tx.Handle("/prizes/lock", txHandler(s, "lock_prize", s.network.LockPrize)).Methods(http.MethodPost)
	tx.Handle("/prizes/claim", txHandler(s, "claim_prize", s.network.ClaimPrize)).Methods(http.MethodPost)
	tx.Handle("/prizes/withdraw", txHandler(s, "withdraw_prize", s.network.WithdrawPrize)).Methods(http.MethodPost)
	tx.Handle("/raffles/create", txHandler(s, "create_raffle", s.network.CreateRaffle)).Methods(http.MethodPost)
	tx.Handle("/raffles/buy", txHandler(s, "buy_tickets", s.network.BuyTickets)).Methods(http.MethodPost)
	tx.Handle("/raffles/draw", txHandler(s, "draw_winner", s.network.DrawWinner)).Methods(http.MethodPost)
	tx.Handle("/raffles/propagate", txHandler(s, "propagate_winner", s.network.PropagateWinner)).Methods(http.MethodPost)
	tx.Handle("/raffles/cancel", txHandler(s, "cancel_raffle", s.network.CancelRaffle)).Methods(http.MethodPost)
	tx.Handle("/raffles/refund", txHandler(s, "refund_players", s.network.RefundPlayers)).Methods(http.MethodPost)
	tx.Handle("/raffles/withdraw", txHandler(s, "withdraw_revenue", s.network.WithdrawRevenue)).Methods(http.MethodPost)

	return r
}
