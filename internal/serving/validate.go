package serving

import (
	"fmt"
	"math"

	"inferd/internal/artifact"
	"inferd/pkg/types"
)

// Validate checks a request against the active artifact's metadata. Pure:
// no side effects, no registry access. Must run before any inference call.
func Validate(req types.PredictionRequest, art *artifact.Artifact) error {
	if len(req.Features) == 0 {
		return ErrValidation("features cannot be empty")
	}
	if len(req.Features) != art.FeatureCount {
		return ErrValidation(fmt.Sprintf("expected %d features, got %d", art.FeatureCount, len(req.Features)))
	}
	for i, f := range req.Features {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrValidation(fmt.Sprintf("feature %d is not a finite number", i))
		}
	}
	if req.RequestedVersion != "" && req.RequestedVersion != art.Version {
		return ErrValidation(fmt.Sprintf("requested version %q does not match active version %q", req.RequestedVersion, art.Version))
	}
	return nil
}
