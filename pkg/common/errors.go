package common

import "errors"

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidDepth = errors.New("invalid depth")
	ErrInvalidMove  = errors.New("invalid move")
	ErrOutOfRange   = errors.New("square out of range")
)
