package domain

import "errors"

var ErrValidation = errors.New("invalid input")
var ErrOrderNotFound = errors.New("order not found")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrBlockedDate = errors.New("scheduled date is not available")
var ErrSnapshotStore = errors.New("snapshot store failure")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserInactive = errors.New("user account is inactive")
var ErrEmailTaken = errors.New("email already registered")
var ErrForbidden = errors.New("access forbidden")
var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")
