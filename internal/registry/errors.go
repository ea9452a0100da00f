package registry

// loadError wraps a failed artifact load with its source path.
type loadError struct {
	path string
	err  error
}

func (e loadError) Error() string { return "load model " + e.path + ": " + e.err.Error() }
func (e loadError) Unwrap() error { return e.err }

// IsLoadError reports whether err came from a failed load or reload.
func IsLoadError(err error) bool {
	_, ok := err.(loadError)
	return ok
}

// loadInProgressError signals a concurrent load/reload attempt; the caller
// should retry later rather than queue.
type loadInProgressError struct{}

func (loadInProgressError) Error() string { return "model load already in progress" }

// ErrLoadInProgress constructs a load-in-progress error.
func ErrLoadInProgress() error { return loadInProgressError{} }

// IsLoadInProgress reports whether err indicates a concurrent load/reload.
func IsLoadInProgress(err error) bool {
	_, ok := err.(loadInProgressError)
	return ok
}
