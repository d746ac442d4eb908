package window

import "errors"

var errMismatchedLength = errors.New("samples and coefficients must have same length")
