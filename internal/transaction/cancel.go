package transaction

import (
	"context"

	"go.uber.org/zap"
	"github.com/rxtech-lab/argo-broker/internal/logger"
	"github.com/rxtech-lab/argo-broker/internal/pricing"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// CancelStrategy voids a pending limit buy. The ledger is append-only, so a
// cancellation is two new rows: a CANCELLED copy of the asset leg and a
// CASH_IN leg refunding the reserved amount.
type CancelStrategy struct {
	ledger Ledger
	logger *logger.Logger
}

func NewCancelStrategy(ledger Ledger, logger *logger.Logger) *CancelStrategy {
	return &CancelStrategy{
		ledger: ledger,
		logger: logger,
	}
}

func (s *CancelStrategy) Execute(ctx context.Context, cancellation Cancellation) (types.Order, error) {
	order := cancellation.Order.Order

	if !order.CanCancel() {
		return types.Order{}, errors.Newf(errors.ErrCodeInvalidCancelState,
			"order %s cannot be cancelled: only pending limit buy orders are cancellable", order.ID)
	}

	cancelledLeg := types.Order{
		UserID:       order.UserID,
		InstrumentID: order.InstrumentID,
		Size:         order.Size,
		Price:        order.Price,
		Type:         order.Type,
		Side:         order.Side,
		Status:       types.OrderStatusCancelled,
	}

	refundLeg := types.Order{
		UserID:       order.UserID,
		InstrumentID: cancellation.CashInstrument.ID,
		Size:         1,
		Price:        pricing.TruncateAmount(order.Price, float64(order.Size)),
		Type:         order.Type,
		Side:         types.OrderSideCashIn,
		Status:       types.OrderStatusFilled,
	}

	identifiers, err := s.ledger.InsertOrders(ctx, []types.Order{cancelledLeg, refundLeg})
	if err != nil {
		return types.Order{}, err
	}

	if len(identifiers) == 0 {
		return types.Order{}, errors.New(errors.ErrCodeOrderCreationFailed,
			"order cancellation returned no identifiers")
	}

	cancelledLeg.ID = identifiers[0]

	s.logger.Info("Order cancelled",
		zap.String("orderId", order.ID),
		zap.String("cancelledId", cancelledLeg.ID),
		zap.Float64("refund", refundLeg.Price),
		zap.String("reason", cancellation.Request.Reason.TakeOr("")))

	return cancelledLeg, nil
}
