package pansharp

import (
	"fmt"
	"math"

	"github.com/wgdzlh/pansharp/log"

	"go.uber.org/zap"
)

// 坐标系转换：将点坐标由srcCRS原地转换至dstCRS（均为WKT），ok[i]为false表示该点无法转换。
// 两坐标系之间无法建立转换时返回错误
type Reprojector interface {
	Reproject(srcCRS, dstCRS string, xs, ys []float64, ok []bool) error
}

// 最近邻重采样：把src重采样到target网格上。
// 输出继承target的仿射变换、坐标系与行列数，保留src的像元类型与NoData。
func Upscale(src *Band, target Grid, rp Reprojector) (out *Band, err error) {
	if target.Width <= 0 || target.Height <= 0 {
		err = fmt.Errorf("%w: target %dx%d", ErrEmptyRaster, target.Width, target.Height)
		return
	}
	inv, err := src.Transform.Invert()
	if err != nil {
		return
	}
	needReproject, err := checkCRS(src.CRS, target.CRS, rp)
	if err != nil {
		return
	}
	fill := 0.0
	if src.HasNoData {
		fill = src.NoData
	}
	out = &Band{
		Grid:      target,
		DataType:  src.DataType,
		NoData:    src.NoData,
		HasNoData: src.HasNoData,
		Data:      make([]float64, target.Size()),
	}
	xs := make([]float64, target.Width)
	ys := make([]float64, target.Width)
	valid := make([]bool, target.Width)
	outside, unprojected := 0, 0
	for row := 0; row < target.Height; row++ {
		for col := range xs {
			xs[col], ys[col] = target.Center(col, row)
			valid[col] = true
		}
		if needReproject {
			if err = rp.Reproject(target.CRS, src.CRS, xs, ys, valid); err != nil {
				log.Error("Upscale:reproject row failed", zap.Int("row", row), zap.Error(err))
				out = nil
				err = fmt.Errorf("%w: %w", ErrReprojection, err)
				return
			}
		}
		line := out.Data[row*target.Width : (row+1)*target.Width]
		for col := range line {
			if !valid[col] {
				line[col] = fill
				unprojected++
				continue
			}
			sc, sr, ok := nearestPixel(inv, xs[col], ys[col], src.Width, src.Height)
			if !ok {
				line[col] = fill
				outside++
				continue
			}
			line[col] = src.Data[sr*src.Width+sc]
		}
	}
	if unprojected > 0 {
		log.Warn("Upscale:pixels not reprojected", zap.Int("count", unprojected), zap.Float64("fill", fill))
	}
	if outside > 0 {
		log.Warn("Upscale:pixels outside source footprint", zap.Int("count", outside), zap.Float64("fill", fill))
	}
	return
}

// 坐标系一致则无需转换；一方缺失或无转换器时报错
func checkCRS(srcCRS, dstCRS string, rp Reprojector) (need bool, err error) {
	if srcCRS == dstCRS {
		return
	}
	if srcCRS == "" || dstCRS == "" {
		err = ErrMissingCRS
		return
	}
	if rp == nil {
		err = ErrCRSMismatch
		return
	}
	need = true
	return
}

// 地理坐标落在源网格中的最近像元，中心等距时取较小的下标
func nearestPixel(inv GeoTransform, x, y float64, width, height int) (col, row int, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	u, v := inv.Apply(x, y)
	col = int(math.Ceil(u)) - 1
	row = int(math.Ceil(v)) - 1
	// 恰好落在左/上边界时归入首个像元
	if u == 0 {
		col = 0
	}
	if v == 0 {
		row = 0
	}
	ok = col >= 0 && col < width && row >= 0 && row < height
	return
}
