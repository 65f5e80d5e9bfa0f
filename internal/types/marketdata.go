package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// MarketData is a per-instrument daily snapshot. Multiple rows may exist per
// instrument; only the most recent by date is used for pricing. Close is
// optional because today's close may not be posted yet, in which case
// PreviousClose governs.
type MarketData struct {
	ID            int64                   `json:"id"`
	InstrumentID  int64                   `json:"instrumentId"`
	High          optional.Option[float64] `json:"high"`
	Low           optional.Option[float64] `json:"low"`
	Open          optional.Option[float64] `json:"open"`
	Close         optional.Option[float64] `json:"close"`
	PreviousClose float64                 `json:"previousClose"`
	Date          time.Time               `json:"date"`
}
