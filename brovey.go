package pansharp

import (
	"fmt"
	"strconv"
	"strings"
)

// 强度（R+G+B）为0时比值无定义，ZeroPolicy决定该像元的输出
type ZeroPolicy struct {
	NoData bool    // false：输出0；true：输出Value并标记为NoData
	Value  float64 // NoData值
}

var ZeroFill = ZeroPolicy{}

func NoDataFill(v float64) ZeroPolicy {
	return ZeroPolicy{NoData: true, Value: v}
}

func (p ZeroPolicy) fill() float64 {
	if p.NoData {
		return p.Value
	}
	return 0
}

func (p ZeroPolicy) String() string {
	if p.NoData {
		return ZERO_POLICY_NODATA + ":" + strconv.FormatFloat(p.Value, 'g', -1, 64)
	}
	return ZERO_POLICY_FILL
}

// 解析 "zero" / "nodata" / "nodata:<value>"
func ParseZeroPolicy(s string) (p ZeroPolicy, err error) {
	name, val, hasVal := strings.Cut(strings.TrimSpace(s), ":")
	switch strings.ToLower(name) {
	case "", ZERO_POLICY_FILL:
		if hasVal {
			err = fmt.Errorf("%w: %q", ErrUnknownZeroPolicy, s)
		}
		return
	case ZERO_POLICY_NODATA:
		p = NoDataFill(DEFAULT_NODATA)
		if hasVal {
			if p.Value, err = strconv.ParseFloat(val, 64); err != nil {
				err = fmt.Errorf("%w: %q: %w", ErrUnknownZeroPolicy, s, err)
			}
		}
		return
	}
	err = fmt.Errorf("%w: %q", ErrUnknownZeroPolicy, s)
	return
}

// Brovey融合后的三个波段
type Fused struct {
	Red           *Band
	Green         *Band
	Blue          *Band
	ZeroIntensity int
}

func (f Fused) Band(id BandID) *Band {
	switch id {
	case Red:
		return f.Red
	case Green:
		return f.Green
	case Blue:
		return f.Blue
	}
	return nil
}

// Brovey变换：c' = c * pan / (r+g+b)，四个波段须位于同一网格
func Brovey(red, green, blue, pan *Band, policy ZeroPolicy) (f Fused, err error) {
	for _, b := range [3]*Band{red, green, blue} {
		if err = pan.checkGrid(b); err != nil {
			return
		}
	}
	newOut := func() *Band {
		b := &Band{
			Grid:     pan.Grid,
			DataType: Float32,
			Data:     make([]float64, pan.Size()),
		}
		if policy.NoData {
			b.NoData = policy.Value
			b.HasNoData = true
		}
		return b
	}
	f.Red, f.Green, f.Blue = newOut(), newOut(), newOut()
	fill := policy.fill()
	for i, p := range pan.Data {
		r, g, b := red.Data[i], green.Data[i], blue.Data[i]
		intensity := r + g + b
		if intensity == 0 {
			f.Red.Data[i], f.Green.Data[i], f.Blue.Data[i] = fill, fill, fill
			f.ZeroIntensity++
			continue
		}
		ratio := p / intensity
		f.Red.Data[i] = toFloat32(r * ratio)
		f.Green.Data[i] = toFloat32(g * ratio)
		f.Blue.Data[i] = toFloat32(b * ratio)
	}
	return
}
