package types

// AssetPosition is the aggregated holding of one instrument for one user,
// derived from filled orders against the latest market snapshot.
type AssetPosition struct {
	ID     int64  `json:"id"`
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	// Quantity is the net number of units held.
	Quantity int64 `json:"quantity"`
	// PositionValue is the monetary value of the position at the latest close.
	PositionValue float64 `json:"positionValue"`
	// TotalReturn is the performance of the position as a percentage.
	TotalReturn float64 `json:"totalReturn"`
}

// BalanceReport is the full portfolio valuation for one user.
type BalanceReport struct {
	// Total is the portfolio value: cash plus assets.
	Total float64 `json:"total"`
	// Cash is the realized cash balance.
	Cash float64 `json:"cash"`
	// AssetPositions lists every instrument with a positive net quantity.
	AssetPositions []AssetPosition `json:"assetPositions"`
}
