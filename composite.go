package pansharp

import "fmt"

// 三波段彩色合成：Bands[0..2]依次为红、绿、蓝
type Composite struct {
	Grid
	Bands       [3]*Band
	ColorInterp [3]ColorInterp
}

// 按R、G、B次序叠加三个波段，写出前先校验形状与网格一致
func Stack(red, green, blue *Band) (c *Composite, err error) {
	bands := [3]*Band{red, green, blue}
	for i, b := range bands {
		if b == nil {
			err = fmt.Errorf("%w: %s band is nil", ErrEmptyRaster, VisibleBands[i])
			return
		}
	}
	for i, b := range bands[1:] {
		if err = red.checkGrid(b); err != nil {
			err = fmt.Errorf("%s band: %w", VisibleBands[i+1], err)
			return
		}
	}
	c = &Composite{
		Grid:        red.Grid,
		ColorInterp: [3]ColorInterp{ColorRed, ColorGreen, ColorBlue},
	}
	for i, b := range bands {
		c.Bands[i] = b.Clone()
	}
	return
}

// 按通道取波段
func (c *Composite) Band(id BandID) *Band {
	for i, v := range VisibleBands {
		if v == id {
			return c.Bands[i]
		}
	}
	return nil
}

// 合成影像的像元类型，取三个波段中枚举值最大者（融合输出均为Float32）
func (c *Composite) DataType() DataType {
	dt := Unknown
	for _, b := range c.Bands {
		if b.DataType > dt {
			dt = b.DataType
		}
	}
	return dt
}
