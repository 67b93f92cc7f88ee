package encode

import "errors"

var (
	// ErrInvalidInput indicates empty, nil, or mismatched grids, or a cell
	// size below one pixel. It signals a broken invariant upstream.
	ErrInvalidInput = errors.New("encode: invalid input")

	// ErrDecode indicates bytes that do not hold an export this package wrote.
	ErrDecode = errors.New("encode: cannot decode image")
)
