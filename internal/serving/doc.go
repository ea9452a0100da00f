// Package serving orchestrates the prediction path around the registry's
// active artifact. It is structured into small files by concern:
//
//   - service.go: Service facade (Predict/Load/Reload/Health/Status).
//   - validate.go: pure request validation against artifact metadata.
//   - executor.go: timed inference execution with typed failure mapping.
//   - metrics.go: Prometheus counters and histograms for the request path.
//   - errors.go: error types and helpers (IsValidationError, IsInferenceError,
//     IsNotLoaded).
//
// The hot path takes no locks: Predict reads the registry's atomically
// published artifact reference and everything else is per-request local
// state. Reloads swap the reference; in-flight calls finish against the
// artifact they started with.
package serving
