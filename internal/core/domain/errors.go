package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrServerNotFound    = errors.New("server not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrAlertRuleNotFound = errors.New("alert rule not found")
	ErrEventNotFound     = errors.New("alert event not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrNotAuthenticated  = errors.New("not authenticated")
)
