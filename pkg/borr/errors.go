package borr

import "errors"

var (
	ErrMalformedInput = errors.New("borr: input cannot be split into lines")
	ErrInvalidFile    = errors.New("borr: invalid language file")
)
