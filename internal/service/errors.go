package service

import "errors"

var (
	ErrWishNotFound        = errors.New("wish not found")
	ErrDeadlineExceeded    = errors.New("too late to change the list")
	ErrForbidden           = errors.New("user is on the naughty list")
	ErrUnauthorized        = errors.New("caller is not the required principal")
	ErrNotBootstrapped     = errors.New("service not bootstrapped")
	ErrAlreadyBootstrapped = errors.New("service already bootstrapped")
)
