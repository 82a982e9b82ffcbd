package pansharp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitTransform = GeoTransform{0, 1, 0, 0, 0, -1}

func TestCalibrateDefaultTable(t *testing.T) {
	table := DefaultCalibration()
	cases := []struct {
		id   BandID
		dn   float64
		want float64
	}{
		{Red, 10000, 49.57591},
		{Green, 10000, 63.78597},
		{Blue, 10000, 58.84571},
		{Pan, 10000, 55.95092},
		{Red, 0, -49.57609},
		{Pan, 65535, 677.38757},
	}
	for _, c := range cases {
		dn := newTestBand(t, unitTransform, 1, 1, UInt16, c.dn)
		out, err := table.Calibrate(c.id, dn)
		require.NoError(t, err)
		assert.Equal(t, Float32, out.DataType)
		assert.InDelta(t, c.want, out.Data[0], 1e-3, "band %s dn %v", c.id, c.dn)
	}
}

func TestCalibrateElementwise(t *testing.T) {
	dn := newTestBand(t, GeoTransform{300, 30, 0, 900, 0, -30}, 2, 2, UInt16, 0, 1, 2, 1000)
	dn.CRS = "EPSG:32619"
	out := Calibrate(dn, CalibrationParams{Scale: 0.5, Offset: -1})
	assert.Equal(t, []float64{-1, -0.5, 0, 499}, out.Data)
	assert.True(t, out.Grid.Equal(dn.Grid))
	// 输入不变
	assert.Equal(t, []float64{0, 1, 2, 1000}, dn.Data)
	assert.Equal(t, UInt16, dn.DataType)
}

func TestCalibrateIdempotent(t *testing.T) {
	dn := newTestBand(t, unitTransform, 3, 1, UInt16, 7, 8123, 65535)
	p := CalibrationParams{Scale: RED_SCALE, Offset: RED_OFFSET}
	a := Calibrate(dn, p)
	b := Calibrate(dn, p)
	for i := range a.Data {
		assert.Equal(t, math.Float64bits(a.Data[i]), math.Float64bits(b.Data[i]))
		// 结果可无损表示为float32
		assert.Equal(t, a.Data[i], float64(float32(a.Data[i])))
	}
}

func TestCalibrationTable(t *testing.T) {
	table, err := NewCalibrationTable(map[BandID]CalibrationParams{Red: {Scale: 2}})
	require.NoError(t, err)
	_, err = table.Params(Pan)
	assert.ErrorIs(t, err, ErrMissingCalibration)
	_, err = table.Calibrate(Green, newTestBand(t, unitTransform, 1, 1, UInt16, 1))
	assert.ErrorIs(t, err, ErrMissingCalibration)

	_, err = NewCalibrationTable(map[BandID]CalibrationParams{"nir": {Scale: 1}})
	assert.ErrorIs(t, err, ErrUnknownBand)

	merged, err := DefaultCalibration().With(map[BandID]CalibrationParams{Pan: {Scale: 1, Offset: 2}})
	require.NoError(t, err)
	p, err := merged.Params(Pan)
	require.NoError(t, err)
	assert.Equal(t, CalibrationParams{Scale: 1, Offset: 2}, p)
	p, err = merged.Params(Red)
	require.NoError(t, err)
	assert.Equal(t, CalibrationParams{Scale: RED_SCALE, Offset: RED_OFFSET}, p)

	// 原表不受影响
	p, err = DefaultCalibration().Params(Pan)
	require.NoError(t, err)
	assert.Equal(t, PAN_SCALE, p.Scale)
}

func TestParseBandID(t *testing.T) {
	id, err := ParseBandID("panchromatic")
	require.NoError(t, err)
	assert.Equal(t, Pan, id)
	id, err = ParseBandID("green")
	require.NoError(t, err)
	assert.Equal(t, Green, id)
	_, err = ParseBandID("swir16")
	assert.ErrorIs(t, err, ErrUnknownBand)
}
