package domain

import (
	"errors"
	"fmt"
)

var (
	ErrIO          = errors.New("document store: i/o failure")
	ErrCorruptData = errors.New("document store: corrupt data")

	ErrNotFound         = errors.New("not found")
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrEmployeeNotFound = fmt.Errorf("employee %w", ErrNotFound)

	ErrDuplicateUser      = errors.New("user already exists")
	ErrDuplicateEmployee  = errors.New("employee already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserLookupCriteria = errors.New("email or login id is required")
)
