package usecase

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternal      = errors.New("internal error")
	ErrNotFound      = errors.New("skill not found")
	ErrNotLoaded     = errors.New("skills are still loading")
	ErrNoSkills      = errors.New("add skills first")
	ErrNameTooShort  = errors.New("skill name too short")
	ErrAIUnavailable = errors.New("ai service unavailable")
)
