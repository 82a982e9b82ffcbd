package pansharp

import (
	"fmt"
	"math"
)

const gridEpsilon = 1e-9

// GDAL次序的仿射变换：x = t[0] + col*t[1] + row*t[2]，y = t[3] + col*t[4] + row*t[5]
type GeoTransform [6]float64

func (t GeoTransform) Apply(col, row float64) (x, y float64) {
	x = t[0] + col*t[1] + row*t[2]
	y = t[3] + col*t[4] + row*t[5]
	return
}

func (t GeoTransform) Invert() (inv GeoTransform, err error) {
	det := t[1]*t[5] - t[2]*t[4]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		err = fmt.Errorf("%w: %v", ErrDegenerateTransform, t)
		return
	}
	inv[1] = t[5] / det
	inv[2] = -t[2] / det
	inv[4] = -t[4] / det
	inv[5] = t[1] / det
	inv[0] = -(inv[1]*t[0] + inv[2]*t[3])
	inv[3] = -(inv[4]*t[0] + inv[5]*t[3])
	return
}

func (t GeoTransform) Equal(o GeoTransform) bool {
	for i := range t {
		if !approxEqual(t[i], o[i]) {
			return false
		}
	}
	return true
}

func approxEqual(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= gridEpsilon*scale
}

// 栅格网格：仿射变换、坐标系（WKT）与行列数共同确定空间范围
type Grid struct {
	Transform GeoTransform
	CRS       string
	Width     int
	Height    int
}

func (g Grid) Size() int {
	return g.Width * g.Height
}

func (g Grid) SameShape(o Grid) bool {
	return g.Width == o.Width && g.Height == o.Height
}

func (g Grid) Equal(o Grid) bool {
	return g.SameShape(o) && g.CRS == o.CRS && g.Transform.Equal(o.Transform)
}

// 像元中心坐标
func (g Grid) Center(col, row int) (x, y float64) {
	return g.Transform.Apply(float64(col)+0.5, float64(row)+0.5)
}

// 网格四角的外包范围 [minX, maxX, minY, maxY]
func (g Grid) Span() (span [4]float64) {
	w, h := float64(g.Width), float64(g.Height)
	span = [4]float64{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, c := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := g.Transform.Apply(c[0], c[1])
		span[0] = math.Min(span[0], x)
		span[1] = math.Max(span[1], x)
		span[2] = math.Min(span[2], y)
		span[3] = math.Max(span[3], y)
	}
	return
}

// 单波段栅格，Data按行优先存储
type Band struct {
	Grid
	DataType  DataType
	NoData    float64
	HasNoData bool
	Data      []float64
}

func NewBand(grid Grid, dt DataType, data []float64) (b *Band, err error) {
	if grid.Width <= 0 || grid.Height <= 0 {
		err = fmt.Errorf("%w: %dx%d", ErrEmptyRaster, grid.Width, grid.Height)
		return
	}
	if data == nil {
		data = make([]float64, grid.Size())
	} else if len(data) != grid.Size() {
		err = fmt.Errorf("%w: got %d, want %dx%d", ErrDataSize, len(data), grid.Width, grid.Height)
		return
	}
	b = &Band{Grid: grid, DataType: dt, Data: data}
	return
}

func (b *Band) At(col, row int) float64 {
	return b.Data[row*b.Width+col]
}

func (b *Band) Set(col, row int, v float64) {
	b.Data[row*b.Width+col] = v
}

func (b *Band) IsNoData(v float64) bool {
	if !b.HasNoData {
		return false
	}
	if math.IsNaN(b.NoData) {
		return math.IsNaN(v)
	}
	return v == b.NoData
}

// 深拷贝，各阶段均产出新的波段，不修改输入
func (b *Band) Clone() *Band {
	c := *b
	c.Data = make([]float64, len(b.Data))
	copy(c.Data, b.Data)
	return &c
}

// 与另一波段的网格一致性校验
func (b *Band) checkGrid(o *Band) error {
	if !b.SameShape(o.Grid) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, b.Width, b.Height, o.Width, o.Height)
	}
	if !b.Grid.Equal(o.Grid) {
		return fmt.Errorf("%w: transform %v crs %q vs transform %v crs %q", ErrGridMismatch, b.Transform, b.CRS, o.Transform, o.CRS)
	}
	return nil
}

func toFloat32(v float64) float64 {
	return float64(float32(v))
}
