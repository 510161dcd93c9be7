package sample

import (
	"fmt"

	"github.com/ethpandaops/fastplong-multireport/internal/downsample"
)

// BuildCurves downsamples each sample's mean quality curve to at most
// maxPoints points. Samples without curve data are skipped.
func BuildCurves(samples []Sample, maxPoints int) ([]QualityCurve, error) {
	curves := make([]QualityCurve, 0, len(samples))

	for _, s := range samples {
		raw := s.Report.MeanQualityCurve()
		if len(raw) == 0 {
			continue
		}

		positions, values, err := downsample.Downsample(raw, maxPoints)
		if err != nil {
			return nil, fmt.Errorf("failed to downsample curve for %s: %w", s.Name, err)
		}

		curves = append(curves, QualityCurve{
			Sample:       s.Name,
			Positions:    positions,
			Values:       values,
			SourceLength: len(raw),
		})
	}

	return curves, nil
}
