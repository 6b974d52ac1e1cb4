package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	royaltyledger "chorus/contexts/finance-core/royalty-ledger"
	royaltyerrors "chorus/contexts/finance-core/royalty-ledger/domain/errors"
	royaltyhttp "chorus/contexts/finance-core/royalty-ledger/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "chorus/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	royalty royaltyledger.Module
}

func New(royalty royaltyledger.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		royalty: royalty,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/royalty/songs", s.handleRegisterSong)
	s.mux.HandleFunc("GET /v1/royalty/songs/{song_id}", s.handleGetSong)
	s.mux.HandleFunc("POST /v1/royalty/songs/{song_id}/distributions", s.handleDistribute)
	s.mux.HandleFunc("GET /v1/royalty/songs/{song_id}/payments/{payment_id}", s.handleRoyaltyHistory)
	s.mux.HandleFunc("GET /v1/royalty/songs/{song_id}/balances/{account}", s.handleContributorBalance)
	s.mux.HandleFunc("GET /v1/royalty/balances/{account}", s.handleTotalBalance)
	s.mux.HandleFunc("GET /v1/royalty/ledger", s.handleLedgerStatus)
	s.mux.HandleFunc("POST /v1/royalty/ledger/pause", s.handlePause)
	s.mux.HandleFunc("POST /v1/royalty/ledger/unpause", s.handleUnpause)
	s.mux.HandleFunc("POST /v1/royalty/ledger/admin", s.handleSetAdmin)
}

func writeRoyaltyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, royaltyerrors.ErrUnauthorized):
		writeRoyaltyError(w, http.StatusForbidden, "unauthorized", err)
	case errors.Is(err, royaltyerrors.ErrLedgerPaused):
		writeRoyaltyError(w, http.StatusConflict, "ledger_paused", err)
	case errors.Is(err, royaltyerrors.ErrInvalidSong):
		writeRoyaltyError(w, http.StatusNotFound, "invalid_song", err)
	case errors.Is(err, royaltyerrors.ErrInvalidAmount):
		writeRoyaltyError(w, http.StatusBadRequest, "invalid_amount", err)
	case errors.Is(err, royaltyerrors.ErrDistributionFailed):
		writeRoyaltyError(w, http.StatusUnprocessableEntity, "distribution_failed", err)
	case errors.Is(err, royaltyerrors.ErrInvalidSongInput):
		writeRoyaltyError(w, http.StatusBadRequest, "invalid_song_input", err)
	default:
		writeJSON(w, http.StatusInternalServerError, royaltyhttp.ErrorResponse{
			Code:    "internal_error",
			Message: "internal server error",
		})
	}
}

// writeRoyaltyError carries the stable numeric code external integrations
// branch on alongside the human-readable string code.
func writeRoyaltyError(w http.ResponseWriter, status int, code string, err error) {
	numeric, _ := royaltyerrors.Code(err)
	writeJSON(w, status, royaltyhttp.ErrorResponse{
		Code:      code,
		ErrorCode: numeric,
		Message:   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveCallerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}
