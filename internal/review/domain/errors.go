package domain

import "errors"

var (
	ErrNotFound             = errors.New("project not found")
	ErrNoBusinessPlan       = errors.New("no business plan uploaded")
	ErrDuplicateMissingInfo = errors.New("missing information item already exists")
	ErrSessionExpired       = errors.New("session expired")
	ErrSaveInFlight         = errors.New("a save is already in progress")
	ErrDeleteInFlight       = errors.New("a delete is already in progress")
	ErrNotEditing           = errors.New("not in editing mode")
	ErrViewClosed           = errors.New("view has been closed")
)
