package service

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidWeek = errors.New("invalid week")
)
