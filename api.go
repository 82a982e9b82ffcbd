package pansharp

import "fmt"

// 波段标识
type BandID string

const (
	Red   BandID = "red"
	Green BandID = "green"
	Blue  BandID = "blue"
	Pan   BandID = "pan"
)

// 可见光波段，顺序即合成影像中的通道顺序
var VisibleBands = [3]BandID{Red, Green, Blue}

var AllBands = [4]BandID{Red, Green, Blue, Pan}

func (id BandID) Valid() bool {
	switch id {
	case Red, Green, Blue, Pan:
		return true
	}
	return false
}

func ParseBandID(s string) (id BandID, err error) {
	id = BandID(s)
	if s == "panchromatic" {
		id = Pan
	}
	if !id.Valid() {
		err = fmt.Errorf("%w: %q", ErrUnknownBand, s)
	}
	return
}

// 像元数据类型，与GDAL的数据类型一一对应
type DataType int

const (
	Unknown DataType = iota
	Byte
	UInt16
	Int16
	UInt32
	Int32
	Float32
	Float64
)

var dataTypeNames = [...]string{"Unknown", "Byte", "UInt16", "Int16", "UInt32", "Int32", "Float32", "Float64"}

func (dt DataType) String() string {
	if dt < 0 || int(dt) >= len(dataTypeNames) {
		return dataTypeNames[0]
	}
	return dataTypeNames[dt]
}

// 波段的颜色解释
type ColorInterp int

const (
	ColorUndefined ColorInterp = iota
	ColorGray
	ColorRed
	ColorGreen
	ColorBlue
)

func (c ColorInterp) String() string {
	switch c {
	case ColorGray:
		return "gray"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	}
	return "undefined"
}

// 一景待处理影像的原始DN波段
type Scene struct {
	Red   *Band
	Green *Band
	Blue  *Band
	Pan   *Band
}

func (s Scene) band(id BandID) *Band {
	switch id {
	case Red:
		return s.Red
	case Green:
		return s.Green
	case Blue:
		return s.Blue
	case Pan:
		return s.Pan
	}
	return nil
}

// 融合流程的输出
type Result struct {
	Composite     *Composite
	ZeroIntensity int // 强度为0（比值无定义）的像元数
}
