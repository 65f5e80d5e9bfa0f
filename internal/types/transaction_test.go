package types

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
)

func TestCreateTransactionRequestValidate(t *testing.T) {
	tests := []struct {
		name        string
		request     CreateTransactionRequest
		shouldError bool
	}{
		{
			name: "valid market buy by quantity",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeMarket,
				Side:          OrderSideBuy,
				Quantity:      optional.Some[int64](10),
			},
			shouldError: false,
		},
		{
			name: "valid market buy by total amount",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeMarket,
				Side:          OrderSideBuy,
				TotalAmount:   optional.Some(100.50),
			},
			shouldError: false,
		},
		{
			name: "valid limit sell",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeLimit,
				Side:          OrderSideSell,
				Quantity:      optional.Some[int64](5),
				Price:         optional.Some(150.50),
			},
			shouldError: false,
		},
		{
			name: "missing account number",
			request: CreateTransactionRequest{
				Ticker:    "BMA",
				OrderType: OrderTypeMarket,
				Side:      OrderSideBuy,
				Quantity:  optional.Some[int64](10),
			},
			shouldError: true,
		},
		{
			name: "cash side not allowed",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeMarket,
				Side:          OrderSideCashIn,
				Quantity:      optional.Some[int64](10),
			},
			shouldError: true,
		},
		{
			name: "neither quantity nor total amount",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeMarket,
				Side:          OrderSideBuy,
			},
			shouldError: true,
		},
		{
			name: "quantity above limit",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeMarket,
				Side:          OrderSideBuy,
				Quantity:      optional.Some[int64](1_000_001),
			},
			shouldError: true,
		},
		{
			name: "zero quantity",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeMarket,
				Side:          OrderSideBuy,
				Quantity:      optional.Some[int64](0),
			},
			shouldError: true,
		},
		{
			name: "total amount below one",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeMarket,
				Side:          OrderSideBuy,
				TotalAmount:   optional.Some(0.99),
			},
			shouldError: true,
		},
		{
			name: "limit order without price",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeLimit,
				Side:          OrderSideBuy,
				Quantity:      optional.Some[int64](10),
			},
			shouldError: true,
		},
		{
			name: "price above limit",
			request: CreateTransactionRequest{
				AccountNumber: "123456",
				Ticker:        "BMA",
				OrderType:     OrderTypeLimit,
				Side:          OrderSideBuy,
				Quantity:      optional.Some[int64](10),
				Price:         optional.Some(100_000_000.0),
			},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCancelTransactionRequestValidate(t *testing.T) {
	valid := CancelTransactionRequest{
		AccountNumber:   "123456",
		SecondaryAction: SecondaryActionCancel,
		Reason:          optional.Some("user requested cancellation"),
	}
	assert.NoError(t, valid.Validate())

	missingAccount := CancelTransactionRequest{SecondaryAction: SecondaryActionCancel}
	assert.Error(t, missingAccount.Validate())

	unknownAction := CancelTransactionRequest{
		AccountNumber:   "123456",
		SecondaryAction: SecondaryAction("ARCHIVE"),
	}
	assert.Error(t, unknownAction.Validate())
}
