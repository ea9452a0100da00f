package serving

// validationError signals a malformed request. Always recoverable at the
// request level; never touches registry state.
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

// ErrValidation constructs a request validation error.
func ErrValidation(msg string) error { return validationError{msg: msg} }

// IsValidationError reports whether err is a request validation failure
// (wrong feature count, non-finite value, version mismatch).
func IsValidationError(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// inferenceError signals that the artifact itself faulted during prediction.
// Recoverable per-request; the registry is unaffected.
type inferenceError struct{ err error }

func (e inferenceError) Error() string { return "inference failed: " + e.err.Error() }
func (e inferenceError) Unwrap() error { return e.err }

// ErrInference wraps an artifact fault in a typed inference error.
func ErrInference(err error) error { return inferenceError{err: err} }

// IsInferenceError reports whether err came from a faulting prediction call.
func IsInferenceError(err error) bool {
	_, ok := err.(inferenceError)
	return ok
}

// notLoadedError signals that no model is available to serve the request.
type notLoadedError struct{}

func (notLoadedError) Error() string { return "model not loaded" }

// ErrNotLoaded constructs a model-not-loaded error.
func ErrNotLoaded() error { return notLoadedError{} }

// IsNotLoaded reports whether err indicates the absence of a loaded model.
func IsNotLoaded(err error) bool {
	_, ok := err.(notLoadedError)
	return ok
}
