package types

// User identifies an account holder. AccountNumber is the external-facing
// identifier used in all APIs instead of the internal id.
type User struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	AccountNumber string `json:"accountNumber"`
}
