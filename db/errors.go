package db

import "errors"

// Typed errors returned by the store. Callers classify with errors.Is;
// anything else wrapping a gorm error is a storage fault.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDuplicateProfile   = errors.New("profile already exists")
	ErrProtectedProfile   = errors.New("the Default profile cannot be deleted")
	ErrUnknownProfile     = errors.New("unknown profile")
	ErrInvalidProfileName = errors.New("invalid profile name")
	ErrUnknownMod         = errors.New("unknown mod")
	ErrNotInstalled       = errors.New("mod is not installed")
	ErrUnknownVersion     = errors.New("unknown version")
)
