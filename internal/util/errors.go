package util

import "errors"

var (
	ErrMissingStartDate = errors.New("answer span missing start date")
	ErrUnknownCategory  = errors.New("unknown category")

	ErrRateLimited = errors.New("feed rate limited")
	ErrTransient   = errors.New("transient feed error")
	ErrPermanent   = errors.New("permanent feed error")
)
