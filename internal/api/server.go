// Package api exposes the brokerage over HTTP: transaction submission and
// cancellation, transaction listing, portfolio valuation and asset search.
// Handlers stay thin; they decode, dispatch and encode.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"github.com/rxtech-lab/argo-broker/internal/logger"
	"github.com/rxtech-lab/argo-broker/internal/types"
)

// TransactionService handles order submission, cancellation and listing.
type TransactionService interface {
	CreateTransaction(ctx context.Context, request types.CreateTransactionRequest) (types.Order, error)
	CancelTransaction(ctx context.Context, orderID string, request types.CancelTransactionRequest) (types.Order, error)
	ListTransactions(ctx context.Context, accountNumber string, pagination types.Pagination) (types.PaginatedResponse[types.OrderDetail], error)
}

// PortfolioService values an account's holdings.
type PortfolioService interface {
	Portfolio(ctx context.Context, userID int64) (types.BalanceReport, error)
}

// Directory resolves accounts and searches the instrument catalogue.
type Directory interface {
	FindUserByAccountNumber(ctx context.Context, accountNumber string) (types.User, error)
	SearchInstruments(ctx context.Context, request types.SearchAssetsRequest) ([]types.Instrument, int, error)
}

// Server is the HTTP surface of the brokerage.
type Server struct {
	transactions TransactionService
	portfolio    PortfolioService
	directory    Directory
	logger       *logger.Logger

	httpServer *http.Server
	listener   net.Listener
}

func NewServer(transactions TransactionService, portfolio PortfolioService, directory Directory, logger *logger.Logger) *Server {
	return &Server{
		transactions: transactions,
		portfolio:    portfolio,
		directory:    directory,
		logger:       logger,
	}
}

// Router builds the route table. Exposed so tests can drive the handlers
// through httptest without binding a socket.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/broker/transactions", s.handleCreateTransaction).Methods("POST")
	router.HandleFunc("/broker/transactions/cancel/{id}", s.handleCancelTransaction).Methods("DELETE")
	router.HandleFunc("/broker/transactions/account/{accountNumber}", s.handleListTransactions).Methods("GET")
	router.HandleFunc("/broker/portfolio/{accountNumber}", s.handleGetPortfolio).Methods("GET")
	router.HandleFunc("/broker/assets/search", s.handleSearchAssets).Methods("GET")

	return router
}

// Start binds the listener and serves in the background.
func (s *Server) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	s.logger.Info("Server listening", zap.String("address", listener.Addr().String()))

	return nil
}

// Address returns the bound listener address.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}
