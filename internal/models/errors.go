package models

import (
	"errors"
)

var (
	ErrNoRecord            = errors.New("models: no matching record found")
	ErrInvalidCredentials  = errors.New("models: invalid credentials")
	ErrDuplicateEmail      = errors.New("models: duplicate email")
	ErrUserNotFound        = errors.New("models: user not found")
	ErrUserPending         = errors.New("models: user is pending approval")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSavedSearchNotFound = errors.New("saved search not found")
	ErrAINotConfigured     = errors.New("ai service is not configured")
	ErrQueryNotUnderstood  = errors.New("Mèo không hiểu yêu cầu của bạn. Bạn có thể diễn đạt khác được không?")
)
