package geotiff

import (
	"fmt"
	"os"

	"github.com/wgdzlh/pansharp"
	"github.com/wgdzlh/pansharp/log"
	"github.com/wgdzlh/pansharp/utils"

	"github.com/airbusgeo/godal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var DefaultCreationOptions = []string{"COMPRESS=LZW", "TILED=YES"}

// GeoTIFF读写工具箱，每次读写独占一个数据集句柄，用完即关闭
type Toolbox struct {
	options []string
	logTag  string
}

// 初始化工具箱，creationOptions为GTiff创建选项（未提供则使用默认值）
func NewToolbox(creationOptions ...string) *Toolbox {
	t := &Toolbox{
		options: DefaultCreationOptions,
		logTag:  "GeoTIFF:",
	}
	if len(creationOptions) > 0 {
		t.options = creationOptions
	}
	return t
}

// 读取单波段tif（多波段时取第一波段）
func (t *Toolbox) ReadBand(tif string) (b *pansharp.Band, err error) {
	bands, err := t.readBands(tif, 1)
	if err != nil {
		return
	}
	b = bands[0]
	return
}

// 读取tif的全部波段
func (t *Toolbox) ReadBands(tif string) (bands []*pansharp.Band, err error) {
	return t.readBands(tif, 0)
}

// limit为0时读取全部波段
func (t *Toolbox) readBands(tif string, limit int) (ret []*pansharp.Band, err error) {
	sds, err := godal.Open(tif, godal.RasterOnly())
	if err != nil {
		log.Error(t.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = fmt.Errorf("%w: %s: %w", pansharp.ErrReadRaster, tif, err)
		return
	}
	defer func() {
		err = multierr.Append(err, sds.Close())
		if err != nil {
			ret = nil
		}
	}()
	tifBands := sds.Bands()
	bc := len(tifBands)
	if bc == 0 {
		log.Error(t.logTag+"tif has no band", zap.String("tif", tif))
		err = fmt.Errorf("%w: %s", pansharp.ErrEmptyRaster, tif)
		return
	}
	gt, err := sds.GeoTransform()
	if err != nil {
		log.Error(t.logTag+"tif has no geotransform", zap.String("tif", tif), zap.Error(err))
		err = fmt.Errorf("%w: %s", pansharp.ErrMissingGeoTransform, tif)
		return
	}
	crs := sds.Projection()
	if limit > 0 && limit < bc {
		bc = limit
	}
	log.Info(t.logTag+"start read tif", zap.String("tif", tif), zap.Int("bands", len(tifBands)), zap.Int("bufBn", bc))
	ret = make([]*pansharp.Band, bc)
	for i := 0; i < bc; i++ {
		band := tifBands[i]
		bandStruct := band.Structure()
		dt := bandStruct.DataType
		x := bandStruct.SizeX
		y := bandStruct.SizeY
		log.Info(t.logTag+"read tif band", zap.Int("band", i), zap.String("dt", dt.String()), zap.Int("width", x), zap.Int("height", y))
		grid := pansharp.Grid{
			Transform: pansharp.GeoTransform(gt),
			CRS:       crs,
			Width:     x,
			Height:    y,
		}
		var b *pansharp.Band
		if b, err = pansharp.NewBand(grid, fromGdalType(dt), nil); err != nil {
			return
		}
		if err = band.Read(0, 0, b.Data, x, y); err != nil {
			log.Error(t.logTag+"read tif band failed", zap.Int("band", i), zap.Error(err))
			err = fmt.Errorf("%w: %s band %d: %w", pansharp.ErrReadRaster, tif, i+1, err)
			return
		}
		b.NoData, b.HasNoData = band.NoData()
		ret[i] = b
	}
	return
}

// 读取一景影像的四个DN波段
func (t *Toolbox) ReadScene(paths map[pansharp.BandID]string) (scene pansharp.Scene, err error) {
	// 先确认四个文件均可读，避免读了一半才失败
	for _, id := range pansharp.AllBands {
		path := paths[id]
		if path == "" {
			err = fmt.Errorf("%w: no file for %s band", pansharp.ErrReadRaster, id)
			return
		}
		if !utils.FileReadable(path) {
			log.Error(t.logTag+"band file not readable", zap.String("band", string(id)), zap.String("tif", path))
			err = fmt.Errorf("%w: %s band file %s not readable", pansharp.ErrReadRaster, id, path)
			return
		}
	}
	read := func(id pansharp.BandID) (*pansharp.Band, error) {
		return t.ReadBand(paths[id])
	}
	if scene.Red, err = read(pansharp.Red); err != nil {
		return
	}
	if scene.Green, err = read(pansharp.Green); err != nil {
		return
	}
	if scene.Blue, err = read(pansharp.Blue); err != nil {
		return
	}
	scene.Pan, err = read(pansharp.Pan)
	return
}

// 写出单波段tif，失败时删除写了一半的文件
func (t *Toolbox) WriteBand(tif string, b *pansharp.Band) (err error) {
	ds, err := t.create(tif, b.Grid, 1, b.DataType)
	if err != nil {
		return
	}
	defer t.finish(tif, ds, &err)
	err = t.writeBand(ds.Bands()[0], b, pansharp.ColorUndefined)
	if err == nil {
		log.Info(t.logTag+"band written", zap.String("tif", tif), zap.String("dt", b.DataType.String()))
	}
	return
}

// 写出RGB三波段合成tif，并设置各波段的颜色解释
func (t *Toolbox) WriteComposite(tif string, c *pansharp.Composite) (err error) {
	ds, err := t.create(tif, c.Grid, len(c.Bands), c.DataType())
	if err != nil {
		return
	}
	defer t.finish(tif, ds, &err)
	bands := ds.Bands()
	for i, b := range c.Bands {
		if err = t.writeBand(bands[i], b, c.ColorInterp[i]); err != nil {
			return
		}
	}
	log.Info(t.logTag+"composite written", zap.String("tif", tif), zap.Int("width", c.Width), zap.Int("height", c.Height))
	return
}

func (t *Toolbox) create(tif string, grid pansharp.Grid, nBands int, dt pansharp.DataType) (ds *godal.Dataset, err error) {
	ds, err = godal.Create(godal.GTiff, tif, nBands, toGdalType(dt), grid.Width, grid.Height, godal.CreationOption(t.options...))
	if err != nil {
		log.Error(t.logTag+"create tif failed", zap.String("tif", tif), zap.Error(err))
		err = fmt.Errorf("%w: %s: %w", pansharp.ErrWriteRaster, tif, err)
		return
	}
	if err = ds.SetGeoTransform([6]float64(grid.Transform)); err == nil && grid.CRS != "" {
		err = ds.SetProjection(grid.CRS)
	}
	if err != nil {
		log.Error(t.logTag+"set georeference failed", zap.String("tif", tif), zap.Error(err))
		err = fmt.Errorf("%w: %s: %w", pansharp.ErrWriteRaster, tif, err)
		t.finish(tif, ds, &err)
		ds = nil
	}
	return
}

func (t *Toolbox) writeBand(band godal.Band, b *pansharp.Band, ci pansharp.ColorInterp) (err error) {
	if b.HasNoData {
		if err = band.SetNoData(b.NoData); err != nil {
			return fmt.Errorf("%w: set nodata: %w", pansharp.ErrWriteRaster, err)
		}
	}
	if ci != pansharp.ColorUndefined {
		if err = band.SetColorInterp(toGdalColor(ci)); err != nil {
			return fmt.Errorf("%w: set color interp: %w", pansharp.ErrWriteRaster, err)
		}
	}
	if err = band.Write(0, 0, b.Data, b.Width, b.Height); err != nil {
		log.Error(t.logTag+"write band failed", zap.Error(err))
		err = fmt.Errorf("%w: %w", pansharp.ErrWriteRaster, err)
	}
	return
}

// 关闭数据集；任一步失败则移除输出文件
func (t *Toolbox) finish(tif string, ds *godal.Dataset, err *error) {
	*err = multierr.Append(*err, ds.Close())
	if *err != nil {
		if e := os.Remove(tif); e != nil && !os.IsNotExist(e) {
			log.Warn(t.logTag+"remove partial tif failed", zap.String("tif", tif), zap.Error(e))
		}
	}
}

// 读取合成tif中各波段的颜色解释
func (t *Toolbox) ReadColorInterp(tif string) (ci []pansharp.ColorInterp, err error) {
	sds, err := godal.Open(tif, godal.RasterOnly())
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", pansharp.ErrReadRaster, tif, err)
		return
	}
	defer func() {
		err = multierr.Append(err, sds.Close())
	}()
	for _, band := range sds.Bands() {
		ci = append(ci, fromGdalColor(band.ColorInterp()))
	}
	return
}
