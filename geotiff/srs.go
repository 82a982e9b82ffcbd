package geotiff

import (
	"fmt"
	"sync"

	"github.com/wgdzlh/pansharp/log"

	"github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// 基于GDAL/OSR的坐标转换器，实现pansharp.Reprojector
type SRSReprojector struct {
	refMap   map[string]*godal.SpatialRef
	transMap map[[2]string]*godal.Transform
	rLock    sync.Mutex
	logTag   string
}

func NewSRSReprojector() *SRSReprojector {
	return &SRSReprojector{
		refMap:   map[string]*godal.SpatialRef{},
		transMap: map[[2]string]*godal.Transform{},
		logTag:   "SRSReprojector:",
	}
}

// 获取WKT对应的坐标系（可复用，Close时统一回收）
func (r *SRSReprojector) getRef(wkt string) (*godal.SpatialRef, error) {
	if ref, ok := r.refMap[wkt]; ok {
		return ref, nil
	}
	ref, err := godal.NewSpatialRefFromWKT(wkt)
	if err != nil {
		log.Error(r.logTag+"parse wkt srs failed", zap.String("wkt", wkt), zap.Error(err))
		return nil, err
	}
	r.refMap[wkt] = ref
	return ref, nil
}

// 获取两坐标系间的转换；坐标系等价时返回nil
func (r *SRSReprojector) getTransform(srcWkt, dstWkt string) (*godal.Transform, error) {
	key := [2]string{srcWkt, dstWkt}
	if trans, ok := r.transMap[key]; ok {
		return trans, nil
	}
	src, err := r.getRef(srcWkt)
	if err != nil {
		return nil, err
	}
	dst, err := r.getRef(dstWkt)
	if err != nil {
		return nil, err
	}
	var trans *godal.Transform
	if !src.IsSame(dst) {
		if trans, err = godal.NewTransform(src, dst); err != nil {
			log.Error(r.logTag+"create transform failed", zap.Error(err))
			return nil, err
		}
		log.Info(r.logTag + "created coordinate transform")
	}
	r.transMap[key] = trans
	return trans, nil
}

// 原地转换点坐标，ok记录各点是否转换成功。
// 仅在无法建立转换、或全部点均失败时返回错误
func (r *SRSReprojector) Reproject(srcCRS, dstCRS string, xs, ys []float64, ok []bool) (err error) {
	if len(xs) != len(ys) || len(xs) != len(ok) {
		return fmt.Errorf("coordinate slices differ in length: %d/%d/%d", len(xs), len(ys), len(ok))
	}
	r.rLock.Lock()
	defer r.rLock.Unlock()
	trans, err := r.getTransform(srcCRS, dstCRS)
	if err != nil {
		return
	}
	if trans == nil {
		for i := range ok {
			ok[i] = true
		}
		return
	}
	zs := make([]float64, len(xs))
	for i := range ok {
		ok[i] = false
	}
	e := trans.TransformEx(xs, ys, zs, ok)
	failed := 0
	for _, v := range ok {
		if !v {
			failed++
		}
	}
	if e != nil && failed == len(ok) {
		log.Error(r.logTag+"transform points failed", zap.Int("points", len(ok)), zap.Error(e))
		return e
	}
	if failed > 0 {
		log.Debug(r.logTag+"some points not transformed", zap.Int("failed", failed), zap.Int("points", len(ok)))
	}
	return
}

func (r *SRSReprojector) Close() {
	r.rLock.Lock()
	defer r.rLock.Unlock()
	for k, trans := range r.transMap {
		if trans != nil {
			trans.Close()
		}
		delete(r.transMap, k)
	}
	for k, ref := range r.refMap {
		ref.Close()
		delete(r.refMap, k)
	}
}
