package domain

import "errors"

var (
	// ErrInvalidRecipientCount is returned when the recipient count is not positive or exceeds the limit
	ErrInvalidRecipientCount = errors.New("invalid recipient count")

	// ErrUnsupportedScale is returned when a scale exceeds MaxScale
	ErrUnsupportedScale = errors.New("unsupported scale")

	// ErrArithmeticOverflow is returned when a mantissa leaves the signed 128-bit range
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrNegativeAmountUnsupported is returned when asked to split a negative amount
	ErrNegativeAmountUnsupported = errors.New("negative amount unsupported")

	// ErrConservationViolated is returned when shares do not add up to the amount being split
	ErrConservationViolated = errors.New("allocation does not conserve the total amount")
)
