package model

import "errors"

// Ошибки доменного уровня. API мапит их на HTTP статусы
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionClosed       = errors.New("session is closed")
	ErrInsufficientCredits = errors.New("not enough credits")
)
