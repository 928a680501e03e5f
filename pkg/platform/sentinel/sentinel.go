package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and the model loader
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrNotLoaded: classifier artifact was never loaded
// - ErrConflict: write conflicts with an existing row
// - ErrUnavailable: service or resource temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrNotLoaded   = errors.New("not loaded")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
