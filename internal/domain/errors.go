package domain

import "errors"

// Collection errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("record id already present")
	ErrInvalidID   = errors.New("invalid record id")
)

// Operation errors.
var (
	ErrAlreadyRegistered = errors.New("already registered for training")
	ErrDuplicateSkill    = errors.New("skill already listed")
	ErrEmptySkill        = errors.New("skill must not be empty")
	ErrUnknownKind       = errors.New("unknown entity kind")
)
