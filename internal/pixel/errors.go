package pixel

import "errors"

var (
	// ErrDimension indicates a grid dimension outside [MinDim, MaxDim].
	ErrDimension = errors.New("pixel: grid dimension out of range")

	// ErrBadColor indicates a colour string that is not #rrggbb or #rgb.
	ErrBadColor = errors.New("pixel: malformed colour")
)
