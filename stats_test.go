package pansharp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandStats(t *testing.T) {
	b := newTestBand(t, unitTransform, 5, 1, Float32, 1, 2, 3, math.NaN(), -9999)
	b.NoData, b.HasNoData = -9999, true
	s := BandStats(b)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Invalid)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.InDelta(t, 2.0, s.Mean, 1e-12)
	assert.InDelta(t, 1.0, s.StdDev, 1e-12)

	s = BandStats(newTestBand(t, unitTransform, 1, 1, Float32, 4))
	assert.Equal(t, Stats{Count: 1, Min: 4, Max: 4, Mean: 4}, s)

	s = BandStats(newTestBand(t, unitTransform, 1, 1, Float32, math.Inf(1)))
	assert.Equal(t, Stats{Invalid: 1}, s)
}
