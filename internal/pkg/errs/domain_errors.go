package errs

import cr "github.com/cockroachdb/errors"

// Sentinel errors shared across the usecase and handler layers
var (
	// Validation errors
	ErrValidation         = cr.New("validation error")
	ErrRedirectNotAllowed = cr.New("redirect url not allowed")

	// Webhook errors
	ErrInvalidSignature     = cr.New("invalid webhook signature")
	ErrWebhookNotConfigured = cr.New("webhook secret not configured")
	ErrMissingSignature     = cr.Mark(cr.New("missing stripe-signature header"), ErrInvalidSignature)
	ErrSideEffectFailed     = cr.New("webhook side effect failed")
	ErrLedgerUnavailable    = cr.New("webhook ledger unavailable")
	ErrEventNotFound        = cr.New("webhook event not found")

	// Checkout errors
	ErrPriceNotConfigured = cr.New("course price not configured")
	ErrSessionNotFound    = cr.New("checkout session not found")
	ErrCheckoutFailed     = cr.New("checkout creation failed")

	// Rate limiting
	ErrRateLimited = cr.New("rate limit exceeded")

	// Operation errors
	ErrDatabaseOperationFailed = cr.New("database operation failed")
)
