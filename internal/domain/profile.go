package domain

import "errors"

// LearningProfileCode classifies a student's preferred learning modality.
// It is assigned by an assessment and used as the key when selecting which
// lesson variant to serve.
type LearningProfileCode string

// The closed set of recognized profile codes.
const (
	ProfileVisual      LearningProfileCode = "Visual"
	ProfileReadWrite   LearningProfileCode = "Read/Write"
	ProfileAuditory    LearningProfileCode = "Auditory"
	ProfileKinesthetic LearningProfileCode = "Kinesthetic"
)

// GeneratedProfiles is the fixed set of profiles that lesson variants are
// generated for. Selection falls back to ProfileVisual for any profile
// outside this set.
var GeneratedProfiles = []LearningProfileCode{ProfileVisual, ProfileReadWrite}

// ErrInvalidProfileCode is returned when a profile code is not one of the
// recognized values.
var ErrInvalidProfileCode = errors.New("invalid learning profile code")

// ParseProfileCode validates a caller-supplied profile string against the
// closed enumeration. Unrecognized codes are rejected rather than passed
// through as free text.
func ParseProfileCode(s string) (LearningProfileCode, error) {
	code := LearningProfileCode(s)
	if !code.Valid() {
		return "", NewValidationError("profile", "is not a recognized learning profile", ErrInvalidProfileCode)
	}
	return code, nil
}

// Valid reports whether the code is one of the recognized profile codes.
func (c LearningProfileCode) Valid() bool {
	switch c {
	case ProfileVisual, ProfileReadWrite, ProfileAuditory, ProfileKinesthetic:
		return true
	default:
		return false
	}
}

// Title returns the display title used for a profile, e.g. "Visual Learner".
func (c LearningProfileCode) Title() string {
	return string(c) + " Learner"
}
