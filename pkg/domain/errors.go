package domain

import "errors"

// ErrSessionNotFound is returned when a draft session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrIndexOutOfRange is returned when an edit targets a point that does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrUnknownKind is returned for a kind other than pole or zero.
var ErrUnknownKind = errors.New("unknown point kind")

// ErrUnknownAxis is returned for an axis other than magnitude or phase.
var ErrUnknownAxis = errors.New("unknown axis")

// ErrNonFinite is returned when a coordinate is NaN or infinite where a finite number is required.
var ErrNonFinite = errors.New("coordinate is not a finite number")
