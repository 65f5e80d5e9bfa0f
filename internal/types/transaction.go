package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

type SecondaryAction string

const (
	SecondaryActionCancel SecondaryAction = "CANCEL"
)

// Request limits carried over from the public API contract.
const (
	MaxOrderQuantity = 1_000_000
	MaxOrderPrice    = 99_999_999
)

// CreateTransactionRequest is the body of POST /broker/transactions. Quantity,
// TotalAmount and Price are all optional; the funds resolution picks the branch
// matching whichever combination the client supplied.
type CreateTransactionRequest struct {
	AccountNumber string    `json:"accountNumber" validate:"required"`
	Ticker        string    `json:"ticker" validate:"required,max=10"`
	OrderType     OrderType `json:"orderType" validate:"required,oneof=MARKET LIMIT"`
	Side          OrderSide `json:"side" validate:"required,oneof=BUY SELL"`
	// TotalAmount is the total amount to spend or obtain. Required when Quantity is absent.
	TotalAmount optional.Option[float64] `json:"totalAmount"`
	// Quantity is the number of asset units to trade. Required when TotalAmount is absent.
	Quantity optional.Option[int64] `json:"quantity"`
	// Price is the client limit price. Required for LIMIT orders.
	Price optional.Option[float64] `json:"price"`
}

// Validate validates the CreateTransactionRequest struct.
func (r *CreateTransactionRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid transaction request", err)
	}

	if r.Quantity.IsNone() && r.TotalAmount.IsNone() {
		return errors.New(errors.ErrCodeInvalidRequest, "either quantity or totalAmount must be provided")
	}

	if r.Quantity.IsSome() {
		quantity := r.Quantity.Unwrap()
		if quantity < 1 {
			return errors.New(errors.ErrCodeInvalidRequest, "quantity must be greater than 0")
		}

		if quantity > MaxOrderQuantity {
			return errors.Newf(errors.ErrCodeInvalidRequest, "quantity exceeds the allowed limit of %d", int64(MaxOrderQuantity))
		}
	}

	if r.TotalAmount.IsSome() && r.TotalAmount.Unwrap() < 1 {
		return errors.New(errors.ErrCodeInvalidRequest, "totalAmount must be greater than 0")
	}

	if r.Price.IsSome() {
		price := r.Price.Unwrap()
		if price < 0 {
			return errors.New(errors.ErrCodeInvalidRequest, "price must be a positive number")
		}

		if price > MaxOrderPrice {
			return errors.Newf(errors.ErrCodeInvalidRequest, "price exceeds the allowed limit of %d", int64(MaxOrderPrice))
		}
	}

	if r.OrderType.IsLimit() && r.Price.IsNone() {
		return errors.Newf(errors.ErrCodeInvalidRequest, "price is required when the order type is %s", OrderTypeLimit)
	}

	return nil
}

// CancelTransactionRequest is the body of DELETE /broker/transactions/cancel/{id}.
type CancelTransactionRequest struct {
	AccountNumber   string          `json:"accountNumber" validate:"required"`
	SecondaryAction SecondaryAction `json:"secondaryAction" validate:"required,oneof=CANCEL"`
	// Reason is an optional free-form cancellation reason, recorded in logs only.
	Reason optional.Option[string] `json:"reason"`
}

// Validate validates the CancelTransactionRequest struct.
func (r *CancelTransactionRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid cancel request", err)
	}

	return nil
}
