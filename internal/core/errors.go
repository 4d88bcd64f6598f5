package core

import "errors"

var (
	ErrEmptyChoice     = errors.New("completion returned no choices")
	ErrUnknownProvider = errors.New("unknown llm provider")
)
