package model

import "errors"

// Error taxonomy. Calculation failures abort the whole request; repository
// and extraction failures are contained to the cell or pair that hit them.
var (
	ErrCalculation       = errors.New("calculation error")
	ErrRepository        = errors.New("repository error")
	ErrMeaningExtraction = errors.New("meaning extraction error")
)
