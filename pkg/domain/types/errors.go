package types

import "errors"

// Sentinel errors shared across the repository, usecase, and controller
// layers. All of them are wrapped with goerr at the point of failure so
// callers check with errors.Is.
var (
	// ErrStoneNotFound is returned when a referenced stone ID does not exist
	ErrStoneNotFound = errors.New("stone not found")

	// ErrNotOwner is returned when deletion is attempted by a user other
	// than the stone's registrant
	ErrNotOwner = errors.New("not the registrant of this stone")

	// ErrNoSubjectDetected is returned when background removal finds no
	// foreground subject in the submitted photo
	ErrNoSubjectDetected = errors.New("no subject detected in photo")

	// ErrNotAStone is returned when the classifier score is below the
	// decision margin
	ErrNotAStone = errors.New("subject is not a decorated stone")

	// ErrExtractionFailure covers unreadable images and extractor errors
	ErrExtractionFailure = errors.New("feature extraction failed")

	// ErrInvalidInput is a locally recoverable validation failure; the
	// intake flow reprompts without losing the session
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionNotFound is returned when a turn arrives for a user with
	// no active intake session
	ErrSessionNotFound = errors.New("no active intake session")

	// ErrGeocodingUnavailable marks a best-effort geocoding failure;
	// it is logged and swallowed, never propagated to the user
	ErrGeocodingUnavailable = errors.New("geocoding unavailable")
)
