package psd

import "errors"

var (
	ErrEmptySignal = errors.New("signal must not be empty")
	ErrShortSignal = errors.New("signal too short for spectral estimation")
)
