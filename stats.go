package pansharp

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// 波段统计，只计有效像元（排除NoData、NaN与Inf）
type Stats struct {
	Count   int
	Invalid int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
}

func BandStats(b *Band) (s Stats) {
	valid := make([]float64, 0, len(b.Data))
	for _, v := range b.Data {
		if b.IsNoData(v) || !isFinite(v) {
			s.Invalid++
			continue
		}
		valid = append(valid, v)
	}
	s.Count = len(valid)
	if s.Count == 0 {
		return
	}
	s.Min = floats.Min(valid)
	s.Max = floats.Max(valid)
	if s.Count == 1 {
		s.Mean = valid[0]
		return
	}
	s.Mean, s.StdDev = stat.MeanStdDev(valid, nil)
	return
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
