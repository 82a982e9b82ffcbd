package pansharp

import (
	"fmt"

	"github.com/wgdzlh/pansharp/log"

	"go.uber.org/zap"
)

// 辐射定标参数：radiance = dn*Scale + Offset
type CalibrationParams struct {
	Scale  float64
	Offset float64
}

func (p CalibrationParams) Apply(dn float64) float64 {
	return dn*p.Scale + p.Offset
}

// 按波段索引的定标参数表，构造后不可修改
type CalibrationTable struct {
	params map[BandID]CalibrationParams
}

func NewCalibrationTable(params map[BandID]CalibrationParams) (t CalibrationTable, err error) {
	t.params = make(map[BandID]CalibrationParams, len(params))
	for id, p := range params {
		if !id.Valid() {
			err = fmt.Errorf("%w: %q", ErrUnknownBand, id)
			return
		}
		t.params[id] = p
	}
	return
}

func DefaultCalibration() CalibrationTable {
	return CalibrationTable{params: map[BandID]CalibrationParams{
		Red:   {Scale: RED_SCALE, Offset: RED_OFFSET},
		Green: {Scale: GREEN_SCALE, Offset: GREEN_OFFSET},
		Blue:  {Scale: BLUE_SCALE, Offset: BLUE_OFFSET},
		Pan:   {Scale: PAN_SCALE, Offset: PAN_OFFSET},
	}}
}

func (t CalibrationTable) Params(id BandID) (p CalibrationParams, err error) {
	p, ok := t.params[id]
	if !ok {
		err = fmt.Errorf("%w: %s", ErrMissingCalibration, id)
	}
	return
}

// 以other中的参数覆盖，返回新表
func (t CalibrationTable) With(other map[BandID]CalibrationParams) (CalibrationTable, error) {
	merged := make(map[BandID]CalibrationParams, len(t.params)+len(other))
	for id, p := range t.params {
		merged[id] = p
	}
	for id, p := range other {
		merged[id] = p
	}
	return NewCalibrationTable(merged)
}

// 将DN值定标为float32辐亮度；不截断负值或越界值
func Calibrate(b *Band, p CalibrationParams) *Band {
	out := &Band{
		Grid:     b.Grid,
		DataType: Float32,
		Data:     make([]float64, len(b.Data)),
	}
	for i, dn := range b.Data {
		out.Data[i] = toFloat32(p.Apply(dn))
	}
	return out
}

// 按参数表定标单个波段
func (t CalibrationTable) Calibrate(id BandID, b *Band) (out *Band, err error) {
	p, err := t.Params(id)
	if err != nil {
		log.Error("CalibrationTable:no params for band", zap.String("band", string(id)))
		return
	}
	out = Calibrate(b, p)
	return
}
