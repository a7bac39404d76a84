package domain

import "errors"

var (
	ErrNotAvailable = errors.New("no rooms available in category")
	ErrNotFound     = errors.New("booking not found")
)
