package generation

import "errors"

// Errors used internally by generator implementations. They never cross
// the SlideGenerator/GuidanceGenerator boundary (implementations fall
// back instead), but they let implementations classify and log failures
// consistently.
var (
	// ErrGenerationFailed indicates the upstream completion call failed.
	ErrGenerationFailed = errors.New("completion service call failed")

	// ErrInvalidResponse indicates the model response could not be parsed
	// into the expected JSON shape.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when a generator is constructed with an
	// unusable configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
