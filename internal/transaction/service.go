package transaction

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"github.com/rxtech-lab/argo-broker/internal/logger"
	"github.com/rxtech-lab/argo-broker/internal/types"
)

// Service is the transaction facade. It validates requests, resolves the
// account, instrument and cash instrument, serializes writes per account and
// dispatches to the registered strategy.
type Service struct {
	ledger         Ledger
	registry       *Registry
	logger         *logger.Logger
	locks          *accountLocks
	currencyTicker string
}

// NewService wires the default strategies into a registry. The currency ticker
// names the deployment's single CURRENCY instrument.
func NewService(ledger Ledger, balances Balances, logger *logger.Logger, currencyTicker string) *Service {
	registry := NewRegistry()
	registry.RegisterPrimary(types.OrderSideBuy, NewBuyStrategy(ledger, balances, logger))
	registry.RegisterPrimary(types.OrderSideSell, NewSellStrategy(ledger, balances, logger))
	registry.RegisterSecondary(types.SecondaryActionCancel, NewCancelStrategy(ledger, logger))

	return &Service{
		ledger:         ledger,
		registry:       registry,
		logger:         logger,
		locks:          newAccountLocks(),
		currencyTicker: currencyTicker,
	}
}

// CreateTransaction executes a buy or sell request and returns the persisted
// asset leg.
func (s *Service) CreateTransaction(ctx context.Context, request types.CreateTransactionRequest) (types.Order, error) {
	if err := request.Validate(); err != nil {
		return types.Order{}, err
	}

	strategy, err := s.registry.Primary(request.Side)
	if err != nil {
		return types.Order{}, err
	}

	lock := s.locks.forAccount(request.AccountNumber)
	lock.Lock()
	defer lock.Unlock()

	var (
		user           types.User
		instrument     types.Instrument
		cashInstrument types.Instrument
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		user, err = s.ledger.FindUserByAccountNumber(groupCtx, request.AccountNumber)
		return err
	})

	group.Go(func() error {
		var err error
		instrument, err = s.ledger.FindInstrumentByTicker(groupCtx, request.Ticker)
		return err
	})

	group.Go(func() error {
		var err error
		cashInstrument, err = s.cashInstrument(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		return types.Order{}, err
	}

	s.logger.Debug("Dispatching transaction",
		zap.String("accountNumber", request.AccountNumber),
		zap.String("ticker", request.Ticker),
		zap.String("side", string(request.Side)))

	return strategy.Execute(ctx, Trade{
		User:           user,
		Instrument:     instrument,
		CashInstrument: cashInstrument,
		Request:        request,
	})
}

// CancelTransaction executes the secondary action on an existing order and
// returns the persisted result row.
func (s *Service) CancelTransaction(ctx context.Context, orderID string, request types.CancelTransactionRequest) (types.Order, error) {
	if err := request.Validate(); err != nil {
		return types.Order{}, err
	}

	strategy, err := s.registry.Secondary(request.SecondaryAction)
	if err != nil {
		return types.Order{}, err
	}

	lock := s.locks.forAccount(request.AccountNumber)
	lock.Lock()
	defer lock.Unlock()

	var (
		user           types.User
		cashInstrument types.Instrument
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		user, err = s.ledger.FindUserByAccountNumber(groupCtx, request.AccountNumber)
		return err
	})

	group.Go(func() error {
		var err error
		cashInstrument, err = s.cashInstrument(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		return types.Order{}, err
	}

	order, err := s.ledger.FindOrderByIDAndUser(ctx, orderID, user.ID)
	if err != nil {
		return types.Order{}, err
	}

	return strategy.Execute(ctx, Cancellation{
		User:           user,
		Order:          order,
		CashInstrument: cashInstrument,
		Request:        request,
	})
}

// ListTransactions returns one page of the account's BUY and SELL orders with
// instrument details.
func (s *Service) ListTransactions(ctx context.Context, accountNumber string, pagination types.Pagination) (types.PaginatedResponse[types.OrderDetail], error) {
	pagination.Normalize()

	user, err := s.ledger.FindUserByAccountNumber(ctx, accountNumber)
	if err != nil {
		return types.PaginatedResponse[types.OrderDetail]{}, err
	}

	details, total, err := s.ledger.FindMarketOrdersByUser(ctx, user.ID, pagination)
	if err != nil {
		return types.PaginatedResponse[types.OrderDetail]{}, err
	}

	if details == nil {
		details = []types.OrderDetail{}
	}

	return types.NewPaginatedResponse(details, total, pagination), nil
}

func (s *Service) cashInstrument(ctx context.Context) (types.Instrument, error) {
	return s.ledger.FindInstrumentByTickerAndType(ctx, s.currencyTicker, types.InstrumentTypeCurrency)
}
