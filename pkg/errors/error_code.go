package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidRequest       ErrorCode = 102
	ErrCodeInvalidInput         ErrorCode = 103
	ErrCodeInvalidSide          ErrorCode = 104

	// Data/Resource errors (200-299)
	ErrCodeUserNotFound       ErrorCode = 200
	ErrCodeInstrumentNotFound ErrorCode = 201
	ErrCodeOrderNotFound      ErrorCode = 202
	ErrCodeMarketDataNotFound ErrorCode = 203

	// Business rule errors (500-599)
	ErrCodeInsufficientFunds  ErrorCode = 500
	ErrCodeInsufficientStock  ErrorCode = 501
	ErrCodeInvalidCancelState ErrorCode = 502
	ErrCodeUnknownStrategy    ErrorCode = 503
	ErrCodeMarketDataMissing  ErrorCode = 504

	// Internal invariant errors (600-699)
	ErrCodeOrderCreationFailed ErrorCode = 600
	ErrCodeQueryFailed         ErrorCode = 601
)
