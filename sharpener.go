package pansharp

import (
	"fmt"

	"github.com/wgdzlh/pansharp/log"

	"go.uber.org/zap"
)

// 流程阶段
type Stage string

const (
	StageCalibrate Stage = "calibrate"
	StageUpscale   Stage = "upscale"
	StageFuse      Stage = "fuse"
)

// 阶段文件前缀，与落盘的中间文件名对应
func (s Stage) Prefix() string {
	switch s {
	case StageCalibrate:
		return PREFIX_RADIANCE
	case StageUpscale:
		return PREFIX_UPSCALED
	case StageFuse:
		return PREFIX_SHARPENED
	}
	return string(s) + "_"
}

// 每个阶段结束后接收该阶段产出的波段，可用于中间结果落盘
type StageSink interface {
	SaveBand(stage Stage, id BandID, b *Band) error
}

// 全色锐化工具箱，四个阶段依次在内存中执行
type Sharpener struct {
	table  CalibrationTable
	rp     Reprojector
	policy ZeroPolicy
	sink   StageSink
	logTag string
}

type Option func(*Sharpener)

func WithCalibration(t CalibrationTable) Option {
	return func(s *Sharpener) {
		s.table = t
	}
}

func WithReprojector(rp Reprojector) Option {
	return func(s *Sharpener) {
		s.rp = rp
	}
}

func WithZeroPolicy(p ZeroPolicy) Option {
	return func(s *Sharpener) {
		s.policy = p
	}
}

func WithStageSink(sink StageSink) Option {
	return func(s *Sharpener) {
		s.sink = sink
	}
}

// 初始化工具箱，默认使用Landsat 9定标参数、零值填充策略
func NewSharpener(opts ...Option) *Sharpener {
	s := &Sharpener{
		table:  DefaultCalibration(),
		policy: ZeroFill,
		logTag: "Sharpener:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// 定标 -> 重采样 -> Brovey融合 -> 合成，任一阶段出错即中止
func (s *Sharpener) Sharpen(scene Scene) (ret *Result, err error) {
	for _, id := range AllBands {
		if scene.band(id) == nil {
			err = fmt.Errorf("%w: %s band missing from scene", ErrEmptyRaster, id)
			return
		}
	}
	pan := scene.Pan
	log.Info(s.logTag+"start sharpen", zap.Int("panWidth", pan.Width), zap.Int("panHeight", pan.Height),
		zap.String("footprint", SpanToWkt(pan.Span())), zap.Stringer("zeroPolicy", s.policy))

	radiance := make(map[BandID]*Band, len(AllBands))
	for _, id := range AllBands {
		if radiance[id], err = s.Calibrate(id, scene.band(id)); err != nil {
			return
		}
	}

	upscaled := make(map[BandID]*Band, len(VisibleBands))
	for _, id := range VisibleBands {
		if upscaled[id], err = s.Upscale(id, radiance[id], radiance[Pan].Grid); err != nil {
			return
		}
	}

	fused, err := s.Fuse(upscaled[Red], upscaled[Green], upscaled[Blue], radiance[Pan])
	if err != nil {
		return
	}

	c, err := Stack(fused.Red, fused.Green, fused.Blue)
	if err != nil {
		log.Error(s.logTag+"stack bands failed", zap.Error(err))
		return
	}
	ret = &Result{Composite: c, ZeroIntensity: fused.ZeroIntensity}
	log.Info(s.logTag+"sharpen done", zap.Int("width", c.Width), zap.Int("height", c.Height),
		zap.Int("zeroIntensity", fused.ZeroIntensity))
	return
}

func (s *Sharpener) Calibrate(id BandID, dn *Band) (out *Band, err error) {
	if out, err = s.table.Calibrate(id, dn); err != nil {
		return
	}
	log.Info(s.logTag+"band calibrated", zap.String("band", string(id)), zap.Int("width", out.Width), zap.Int("height", out.Height))
	err = s.save(StageCalibrate, id, out)
	return
}

func (s *Sharpener) Upscale(id BandID, b *Band, target Grid) (out *Band, err error) {
	if out, err = Upscale(b, target, s.rp); err != nil {
		log.Error(s.logTag+"upscale band failed", zap.String("band", string(id)), zap.Error(err))
		return
	}
	fromRes, _ := PixelSize(b.Transform)
	toRes, _ := PixelSize(target.Transform)
	log.Info(s.logTag+"band upscaled", zap.String("band", string(id)), zap.Float64("fromRes", fromRes), zap.Float64("toRes", toRes),
		zap.Int("fromWidth", b.Width), zap.Int("toWidth", out.Width), zap.String("dt", out.DataType.String()))
	err = s.save(StageUpscale, id, out)
	return
}

func (s *Sharpener) Fuse(red, green, blue, pan *Band) (f Fused, err error) {
	if f, err = Brovey(red, green, blue, pan, s.policy); err != nil {
		log.Error(s.logTag+"brovey fusion failed", zap.Error(err))
		return
	}
	if f.ZeroIntensity > 0 {
		log.Warn(s.logTag+"zero intensity pixels", zap.Int("count", f.ZeroIntensity), zap.Stringer("policy", s.policy))
	}
	for _, id := range VisibleBands {
		if err = s.save(StageFuse, id, f.Band(id)); err != nil {
			return
		}
	}
	return
}

func (s *Sharpener) save(stage Stage, id BandID, b *Band) (err error) {
	if s.sink == nil {
		return
	}
	if err = s.sink.SaveBand(stage, id, b); err != nil {
		log.Error(s.logTag+"save stage output failed", zap.String("stage", string(stage)), zap.String("band", string(id)), zap.Error(err))
	}
	return
}
