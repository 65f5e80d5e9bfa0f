package types

type InstrumentType string

const (
	InstrumentTypeCurrency InstrumentType = "CURRENCY"
	InstrumentTypeStocks   InstrumentType = "STOCKS"
)

// Instrument is any tradable or cash-equivalent entity. Exactly one instrument
// of type CURRENCY exists per deployment and represents cash; it is looked up
// by ticker and type rather than by a fixed id.
type Instrument struct {
	ID     int64          `json:"id"`
	Ticker string         `json:"ticker"`
	Name   string         `json:"name"`
	Type   InstrumentType `json:"type"`
}

// IsCash reports whether the instrument type represents currency.
func (t InstrumentType) IsCash() bool {
	return t == InstrumentTypeCurrency
}
