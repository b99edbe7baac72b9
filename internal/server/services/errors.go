package services

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrNoAPIKey           = errors.New("no available api key")
	ErrProviderFailure    = errors.New("answer provider failure")
)
