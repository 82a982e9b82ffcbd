package geotiff

import (
	"github.com/wgdzlh/pansharp"

	"github.com/airbusgeo/godal"
)

func init() {
	godal.RegisterAll()
}

func fromGdalType(dt godal.DataType) pansharp.DataType {
	switch dt {
	case godal.Byte:
		return pansharp.Byte
	case godal.UInt16:
		return pansharp.UInt16
	case godal.Int16:
		return pansharp.Int16
	case godal.UInt32:
		return pansharp.UInt32
	case godal.Int32:
		return pansharp.Int32
	case godal.Float32:
		return pansharp.Float32
	case godal.Float64:
		return pansharp.Float64
	}
	return pansharp.Unknown
}

// 未知类型按Float64写出，不丢精度
func toGdalType(dt pansharp.DataType) godal.DataType {
	switch dt {
	case pansharp.Byte:
		return godal.Byte
	case pansharp.UInt16:
		return godal.UInt16
	case pansharp.Int16:
		return godal.Int16
	case pansharp.UInt32:
		return godal.UInt32
	case pansharp.Int32:
		return godal.Int32
	case pansharp.Float32:
		return godal.Float32
	}
	return godal.Float64
}

func toGdalColor(ci pansharp.ColorInterp) godal.ColorInterp {
	switch ci {
	case pansharp.ColorGray:
		return godal.CIGray
	case pansharp.ColorRed:
		return godal.CIRed
	case pansharp.ColorGreen:
		return godal.CIGreen
	case pansharp.ColorBlue:
		return godal.CIBlue
	}
	return godal.CIUndefined
}

func fromGdalColor(ci godal.ColorInterp) pansharp.ColorInterp {
	switch ci {
	case godal.CIGray:
		return pansharp.ColorGray
	case godal.CIRed:
		return pansharp.ColorRed
	case godal.CIGreen:
		return pansharp.ColorGreen
	case godal.CIBlue:
		return pansharp.ColorBlue
	}
	return pansharp.ColorUndefined
}
