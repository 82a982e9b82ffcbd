package geotiff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wgdzlh/pansharp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 以文件为边界跑通四个阶段：4x4全色、2x2可见光
func TestSharpenFromFiles(t *testing.T) {
	dir := t.TempDir()
	tb := NewToolbox()
	crs := epsgWkt(t, 32619)
	vis := pansharp.Grid{Transform: pansharp.GeoTransform{422400, 30, 0, 4966160, 0, -30}, CRS: crs, Width: 2, Height: 2}
	pan := pansharp.Grid{Transform: pansharp.GeoTransform{422400, 15, 0, 4966160, 0, -15}, CRS: crs, Width: 4, Height: 4}
	panDN := make([]float64, pan.Size())
	for i := range panDN {
		panDN[i] = 24
	}
	inputs := map[pansharp.BandID]*pansharp.Band{
		pansharp.Red:   testBand(t, vis, pansharp.UInt16, 1, 2, 3, 4),
		pansharp.Green: testBand(t, vis, pansharp.UInt16, 1, 1, 1, 1),
		pansharp.Blue:  testBand(t, vis, pansharp.UInt16, 2, 2, 2, 2),
		pansharp.Pan:   testBand(t, pan, pansharp.UInt16, panDN...),
	}
	paths := map[pansharp.BandID]string{}
	for id, b := range inputs {
		paths[id] = filepath.Join(dir, "dn_"+string(id)+".tif")
		require.NoError(t, tb.WriteBand(paths[id], b))
	}

	table, err := pansharp.NewCalibrationTable(map[pansharp.BandID]pansharp.CalibrationParams{
		pansharp.Red:   {Scale: 2},
		pansharp.Green: {Scale: 1, Offset: 1},
		pansharp.Blue:  {Scale: 1},
		pansharp.Pan:   {Scale: 1},
	})
	require.NoError(t, err)
	work := filepath.Join(dir, "work")
	require.NoError(t, os.Mkdir(work, os.ModePerm))
	sink := NewDirSink(work, tb)
	rp := NewSRSReprojector()
	defer rp.Close()

	scene, err := tb.ReadScene(paths)
	require.NoError(t, err)
	ret, err := pansharp.NewSharpener(
		pansharp.WithCalibration(table),
		pansharp.WithReprojector(rp),
		pansharp.WithStageSink(sink),
	).Sharpen(scene)
	require.NoError(t, err)

	out := filepath.Join(dir, pansharp.COMPOSITE_NAME)
	require.NoError(t, tb.WriteComposite(out, ret.Composite))
	bands, err := tb.ReadBands(out)
	require.NoError(t, err)
	require.Len(t, bands, 3)
	// 左上象限：R=2 G=2 B=2，比值 24/6=4；右下象限：R=8 G=2 B=2，比值 2
	assert.Equal(t, 8.0, bands[0].At(0, 0))
	assert.Equal(t, 8.0, bands[1].At(1, 1))
	assert.Equal(t, 16.0, bands[0].At(3, 3))
	assert.Equal(t, 4.0, bands[2].At(2, 3))
	assert.Equal(t, pan.Transform, bands[0].Transform)

	assert.Len(t, sink.Files(), 10)
	upscaled, err := tb.ReadBand(StagePath(work, pansharp.StageUpscale, pansharp.Red))
	require.NoError(t, err)
	assert.Equal(t, 4, upscaled.Width)
	assert.Equal(t, pansharp.Float32, upscaled.DataType)

	sink.Cleanup()
	_, err = os.Stat(StagePath(work, pansharp.StageCalibrate, pansharp.Pan))
	assert.True(t, os.IsNotExist(err))
}
