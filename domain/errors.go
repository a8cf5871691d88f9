package domain

import "errors"

// Sentinel errors for the auth flows. Delivery maps these onto HTTP status
// codes; service code only ever wraps or returns them.
var (
	ErrAccountNotFound   = errors.New("user not found")
	ErrAccountExists     = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrNotVerified       = errors.New("user is not verified yet")
	ErrAlreadyVerified   = errors.New("user has been verified")
	ErrInvalidOTP        = errors.New("invalid otp")
	ErrResetNotPermitted = errors.New("user does not have access to reset password")
)

// Catalog lookup errors.
var (
	ErrSkinTypeUnknown     = errors.New("unknown skin type")
	ErrSkincareStepUnknown = errors.New("unknown skincare product")
)
