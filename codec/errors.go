package codec

import "errors"

var (
	// ErrEncoderNotFound is returned when an encoder is not found in the registry
	ErrEncoderNotFound = errors.New("encoder not found")

	// ErrInvalidParameter is returned when encoding parameters are invalid
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidQfactor is returned when the qfactor parameter is invalid
	ErrInvalidQfactor = errors.New("invalid qfactor (must be 0-100)")
)
