package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var request types.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, "malformed request body", err))
		return
	}

	order, err := s.transactions.CreateTransaction(r.Context(), request)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleCancelTransaction(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var request types.CancelTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, "malformed request body", err))
		return
	}

	order, err := s.transactions.CancelTransaction(r.Context(), orderID, request)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	accountNumber := mux.Vars(r)["accountNumber"]

	response, err := s.transactions.ListTransactions(r.Context(), accountNumber, paginationFromQuery(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	accountNumber := mux.Vars(r)["accountNumber"]

	user, err := s.directory.FindUserByAccountNumber(r.Context(), accountNumber)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.portfolio.Portfolio(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSearchAssets(w http.ResponseWriter, r *http.Request) {
	request := types.SearchAssetsRequest{
		Ticker:     r.URL.Query().Get("ticker"),
		Name:       r.URL.Query().Get("name"),
		Pagination: paginationFromQuery(r),
	}
	request.Normalize()

	instruments, total, err := s.directory.SearchInstruments(r.Context(), request)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if instruments == nil {
		instruments = []types.Instrument{}
	}

	s.writeJSON(w, http.StatusOK, types.NewPaginatedResponse(instruments, total, request.Pagination))
}

func paginationFromQuery(r *http.Request) types.Pagination {
	pagination := types.Pagination{}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		pagination.Page = page
	}

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		pagination.Limit = limit
	}

	pagination.Normalize()

	return pagination
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)

	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	} else {
		s.logger.Debug("Request rejected", zap.Error(err))
	}

	s.writeJSON(w, status, errorResponse{
		Code:    int(errors.GetCode(err)),
		Message: err.Error(),
	})
}
