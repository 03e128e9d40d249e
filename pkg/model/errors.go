package model

import "errors"

var (
	ErrNoSections       = errors.New("a request must have at least one section")
	ErrLoadAlreadySet   = errors.New("request load has already been set")
	ErrDuplicateRequest = errors.New("request is already registered")
	ErrDuplicateStaff   = errors.New("staff member is already registered")
)
