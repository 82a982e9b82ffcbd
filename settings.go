package pansharp

import (
	"fmt"
	"os"

	"github.com/wgdzlh/pansharp/log"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// YAML配置文件，未给出的项使用内置默认值
//
//	calibration:
//	  red: {scale: 9.9152e-03, offset: -49.57609}
//	zero_intensity: nodata:-9999
//	creation_options: [COMPRESS=LZW, TILED=YES]
type Settings struct {
	Calibration     map[string]CalibrationOverride `yaml:"calibration"`
	ZeroIntensity   string                         `yaml:"zero_intensity"`
	CreationOptions []string                       `yaml:"creation_options"`
}

// 单波段定标覆盖项，缺省字段沿用默认值
type CalibrationOverride struct {
	Scale  *float64 `yaml:"scale"`
	Offset *float64 `yaml:"offset"`
}

func (o CalibrationOverride) apply(p CalibrationParams) CalibrationParams {
	if o.Scale != nil {
		p.Scale = *o.Scale
	}
	if o.Offset != nil {
		p.Offset = *o.Offset
	}
	return p
}

func LoadSettings(path string) (s Settings, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error("Settings:read file failed", zap.String("path", path), zap.Error(err))
		return
	}
	if err = yaml.UnmarshalStrict(raw, &s); err != nil {
		log.Error("Settings:parse yaml failed", zap.String("path", path), zap.Error(err))
		err = fmt.Errorf("parse settings %s: %w", path, err)
	}
	return
}

// 按字段合并默认定标参数与配置中的覆盖项
func (s Settings) CalibrationTable() (t CalibrationTable, err error) {
	base := DefaultCalibration()
	over := make(map[BandID]CalibrationParams, len(s.Calibration))
	var (
		id BandID
		p  CalibrationParams
	)
	for k, o := range s.Calibration {
		if id, err = ParseBandID(k); err != nil {
			return
		}
		if p, err = base.Params(id); err != nil {
			return
		}
		over[id] = o.apply(p)
	}
	return base.With(over)
}

func (s Settings) ZeroPolicy() (ZeroPolicy, error) {
	return ParseZeroPolicy(s.ZeroIntensity)
}

// 由配置生成Sharpener选项
func (s Settings) Options() (opts []Option, err error) {
	table, err := s.CalibrationTable()
	if err != nil {
		return
	}
	policy, err := s.ZeroPolicy()
	if err != nil {
		return
	}
	opts = []Option{WithCalibration(table), WithZeroPolicy(policy)}
	return
}
