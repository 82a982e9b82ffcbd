package pansharp

import (
	"fmt"
	"math"
)

// 外包范围转WKT多边形，用于日志中描述网格覆盖区
func PointsToWkt(x1, x2, y1, y2 float64) string {
	return fmt.Sprintf("POLYGON((%[1]f %[3]f, %[1]f %[4]f, %[2]f %[4]f, %[2]f %[3]f, %[1]f %[3]f))", x1, x2, y1, y2)
}

func SpanToWkt(span [4]float64) string {
	return PointsToWkt(span[0], span[1], span[2], span[3])
}

// 像元地面分辨率（x、y方向的绝对值）
func PixelSize(t GeoTransform) (resX, resY float64) {
	resX = math.Hypot(t[1], t[4])
	resY = math.Hypot(t[2], t[5])
	return
}
