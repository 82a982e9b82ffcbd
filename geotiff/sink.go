package geotiff

import (
	"os"
	"path/filepath"

	"github.com/wgdzlh/pansharp"
	"github.com/wgdzlh/pansharp/log"

	"go.uber.org/zap"
)

// 将各阶段中间结果写入目录，文件名形如 radiance_red.tif
type DirSink struct {
	Dir   string
	tb    *Toolbox
	files []string
}

func NewDirSink(dir string, tb *Toolbox) *DirSink {
	if tb == nil {
		tb = NewToolbox()
	}
	return &DirSink{Dir: dir, tb: tb}
}

func StagePath(dir string, stage pansharp.Stage, id pansharp.BandID) string {
	return filepath.Join(dir, stage.Prefix()+string(id)+pansharp.FILE_EXT_TIF)
}

func (s *DirSink) SaveBand(stage pansharp.Stage, id pansharp.BandID, b *pansharp.Band) (err error) {
	path := StagePath(s.Dir, stage, id)
	if err = s.tb.WriteBand(path, b); err != nil {
		return
	}
	s.files = append(s.files, path)
	return
}

// 已写出的中间文件
func (s *DirSink) Files() []string {
	return s.files
}

// 删除已写出的中间文件
func (s *DirSink) Cleanup() {
	for _, f := range s.files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			log.Warn("DirSink:remove file failed", zap.String("file", f), zap.Error(err))
		}
	}
	s.files = nil
}
