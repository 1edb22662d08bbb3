package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map each kind to
// a distinct HTTP status; messages are part of the API contract.
var (
	// Validation — malformed input, no state change.
	ErrValidation = errors.New("validation failed")

	// Forbidden — wrong role or wrong actor, no state change.
	ErrOnlyProvidersCanClaim = errors.New("only providers can claim orders")
	ErrNotClaimedByActor     = errors.New("you can only release orders you have claimed")
	ErrInvalidCredentials    = errors.New("invalid email or password")

	// Conflict — order not in the expected state, no state change.
	ErrOrderAlreadyClaimed = errors.New("order already claimed")
	ErrOrderNotPending     = errors.New("only pending orders can be claimed")
	ErrEmailTaken          = errors.New("email already registered")

	// NotFound — unknown id, or id outside the caller's visibility scope.
	// Scope exclusions must be indistinguishable from true absence.
	ErrOrderNotFound    = errors.New("order not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
)
