package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForOrderType(t *testing.T) {
	assert.Equal(t, OrderStatusNew, StatusForOrderType(OrderTypeLimit))
	assert.Equal(t, OrderStatusFilled, StatusForOrderType(OrderTypeMarket))
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		name     string
		order    Order
		expected bool
	}{
		{
			name:     "pending limit buy is cancellable",
			order:    Order{Status: OrderStatusNew, Side: OrderSideBuy, Type: OrderTypeLimit},
			expected: true,
		},
		{
			name:     "filled limit buy is not cancellable",
			order:    Order{Status: OrderStatusFilled, Side: OrderSideBuy, Type: OrderTypeLimit},
			expected: false,
		},
		{
			name:     "pending limit sell is not cancellable",
			order:    Order{Status: OrderStatusNew, Side: OrderSideSell, Type: OrderTypeLimit},
			expected: false,
		},
		{
			name:     "pending market buy is not cancellable",
			order:    Order{Status: OrderStatusNew, Side: OrderSideBuy, Type: OrderTypeMarket},
			expected: false,
		},
		{
			name:     "cancelled order is not cancellable again",
			order:    Order{Status: OrderStatusCancelled, Side: OrderSideBuy, Type: OrderTypeLimit},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.order.CanCancel())
		})
	}
}

func TestInstrumentTypeIsCash(t *testing.T) {
	assert.True(t, InstrumentTypeCurrency.IsCash())
	assert.False(t, InstrumentTypeStocks.IsCash())
}

func TestPaginationNormalize(t *testing.T) {
	p := Pagination{}
	p.Normalize()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = Pagination{Page: 3, Limit: 500}
	p.Normalize()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestPaginationSkipAndTotalPages(t *testing.T) {
	p := Pagination{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Skip())
	assert.Equal(t, 5, p.TotalPages(41))
	assert.Equal(t, 4, p.TotalPages(40))
	assert.Equal(t, 0, p.TotalPages(0))
}
