package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Registry related errors
	ErrMemberNotFound         = errors.New("member not found")
	ErrMedicalSocietyNotFound = errors.New("medical society not found")
	ErrMedicalSocietyExists   = errors.New("medical society already exists")
	ErrSpaceNotFound          = errors.New("space not found")
	ErrSpaceAlreadyExists     = errors.New("space already exists")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
