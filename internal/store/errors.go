package store

import "errors"

var (
	ErrNotFound           = errors.New("key not found")
	ErrInvalidKey         = errors.New("invalid store key")
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
	ErrRedisNotReady      = errors.New("redis did not become ready")
)
