package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/wgdzlh/pansharp"
	"github.com/wgdzlh/pansharp/geotiff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScene(t *testing.T, dir string) map[pansharp.BandID]string {
	t.Helper()
	tb := geotiff.NewToolbox()
	vis := pansharp.Grid{Transform: pansharp.GeoTransform{0, 2, 0, 4, 0, -2}, Width: 2, Height: 2}
	pan := pansharp.Grid{Transform: pansharp.GeoTransform{0, 1, 0, 4, 0, -1}, Width: 4, Height: 4}
	paths := map[pansharp.BandID]string{}
	for _, id := range pansharp.AllBands {
		grid := vis
		if id == pansharp.Pan {
			grid = pan
		}
		data := make([]float64, grid.Size())
		for i := range data {
			data[i] = 10000
		}
		b, err := pansharp.NewBand(grid, pansharp.UInt16, data)
		require.NoError(t, err)
		paths[id] = filepath.Join(dir, string(id)+".tif")
		require.NoError(t, tb.WriteBand(paths[id], b))
	}
	return paths
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	paths := writeScene(t, dir)
	cfg := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("zero_intensity: nodata:-1\n"), 0o644))
	work := filepath.Join(dir, "work")
	require.NoError(t, os.Mkdir(work, os.ModePerm))
	out := filepath.Join(dir, "out.tif")

	var buf bytes.Buffer
	require.NoError(t, run(paths, out, cfg, work, false, &buf))
	assert.Contains(t, buf.String(), "size: 4 x 4 (16 pixels)")
	assert.Contains(t, buf.String(), "red")

	bands, err := geotiff.NewToolbox().ReadBands(out)
	require.NoError(t, err)
	assert.Len(t, bands, 3)
	runs, err := os.ReadDir(work)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	files, err := os.ReadDir(filepath.Join(work, runs[0].Name()))
	require.NoError(t, err)
	assert.Len(t, files, 10)
}

func TestRunFailureRemovesIntermediates(t *testing.T) {
	dir := t.TempDir()
	paths := writeScene(t, dir)
	work := filepath.Join(dir, "work")
	require.NoError(t, os.Mkdir(work, os.ModePerm))

	// 中间结果已全部写出，合成影像写入不存在的目录时失败
	out := filepath.Join(dir, "missing-dir", "out.tif")
	err := run(paths, out, "", work, false, &bytes.Buffer{})
	assert.ErrorIs(t, err, pansharp.ErrWriteRaster)
	runs, err := os.ReadDir(work)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunFailureKeepsIntermediates(t *testing.T) {
	dir := t.TempDir()
	paths := writeScene(t, dir)
	work := filepath.Join(dir, "work")
	require.NoError(t, os.Mkdir(work, os.ModePerm))

	out := filepath.Join(dir, "missing-dir", "out.tif")
	err := run(paths, out, "", work, true, &bytes.Buffer{})
	assert.ErrorIs(t, err, pansharp.ErrWriteRaster)
	runs, err := os.ReadDir(work)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	files, err := os.ReadDir(filepath.Join(work, runs[0].Name()))
	require.NoError(t, err)
	assert.Len(t, files, 10)
}
