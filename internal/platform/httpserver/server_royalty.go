package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	royaltyhttp "chorus/contexts/finance-core/royalty-ledger/transport/http"
)

func (s *Server) handleRegisterSong(w http.ResponseWriter, r *http.Request) {
	caller := resolveCallerID(r)
	if caller == "" {
		writeJSON(w, http.StatusUnauthorized, royaltyhttp.ErrorResponse{
			Code:    "missing_caller",
			Message: "X-User-Id header is required",
		})
		return
	}
	var req royaltyhttp.RegisterSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, royaltyhttp.ErrorResponse{
			Code:    "invalid_body",
			Message: "request body must be valid JSON",
		})
		return
	}
	resp, err := s.royalty.Handler.RegisterSongHandler(r.Context(), caller, req)
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	songID, ok := parsePathUint(w, r, "song_id")
	if !ok {
		return
	}
	resp, err := s.royalty.Handler.GetSongHandler(r.Context(), songID)
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	caller := resolveCallerID(r)
	if caller == "" {
		writeJSON(w, http.StatusUnauthorized, royaltyhttp.ErrorResponse{
			Code:    "missing_caller",
			Message: "X-User-Id header is required",
		})
		return
	}
	songID, ok := parsePathUint(w, r, "song_id")
	if !ok {
		return
	}
	var req royaltyhttp.DistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, royaltyhttp.ErrorResponse{
			Code:    "invalid_body",
			Message: "request body must be valid JSON",
		})
		return
	}
	resp, err := s.royalty.Handler.DistributeHandler(r.Context(), caller, songID, req)
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoyaltyHistory(w http.ResponseWriter, r *http.Request) {
	songID, ok := parsePathUint(w, r, "song_id")
	if !ok {
		return
	}
	paymentID, ok := parsePathUint(w, r, "payment_id")
	if !ok {
		return
	}
	resp, err := s.royalty.Handler.HistoryHandler(r.Context(), songID, paymentID)
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContributorBalance(w http.ResponseWriter, r *http.Request) {
	songID, ok := parsePathUint(w, r, "song_id")
	if !ok {
		return
	}
	resp, err := s.royalty.Handler.BalanceHandler(r.Context(), songID, r.PathValue("account"))
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTotalBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.royalty.Handler.TotalBalanceHandler(r.Context(), r.PathValue("account"))
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLedgerStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.royalty.Handler.StatusHandler(r.Context())
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	resp, err := s.royalty.Handler.PauseHandler(r.Context(), resolveCallerID(r))
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnpause(w http.ResponseWriter, r *http.Request) {
	resp, err := s.royalty.Handler.UnpauseHandler(r.Context(), resolveCallerID(r))
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetAdmin(w http.ResponseWriter, r *http.Request) {
	var req royaltyhttp.SetAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, royaltyhttp.ErrorResponse{
			Code:    "invalid_body",
			Message: "request body must be valid JSON",
		})
		return
	}
	resp, err := s.royalty.Handler.SetAdminHandler(r.Context(), resolveCallerID(r), req)
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parsePathUint(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	value, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, royaltyhttp.ErrorResponse{
			Code:    "invalid_" + name,
			Message: name + " must be a non-negative integer",
		})
		return 0, false
	}
	return value, true
}
