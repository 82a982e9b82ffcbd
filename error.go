package pansharp

import "errors"

var (
	// I/O
	ErrReadRaster  = errors.New("read raster failed")
	ErrWriteRaster = errors.New("write raster failed")
	ErrEmptyRaster = errors.New("empty raster")

	// 几何/投影
	ErrMissingCRS          = errors.New("missing spatial reference")
	ErrCRSMismatch         = errors.New("spatial references differ and no reprojector given")
	ErrReprojection        = errors.New("reprojection failed")
	ErrDegenerateTransform = errors.New("affine transform is not invertible")
	ErrMissingGeoTransform = errors.New("raster has no geotransform")

	// 形状
	ErrShapeMismatch = errors.New("raster shapes differ")
	ErrGridMismatch  = errors.New("raster grids differ")
	ErrDataSize      = errors.New("data length does not match raster size")

	// 配置
	ErrMissingCalibration = errors.New("missing calibration params")
	ErrUnknownBand        = errors.New("unknown band id")
	ErrUnknownZeroPolicy  = errors.New("unknown zero intensity policy")
)
