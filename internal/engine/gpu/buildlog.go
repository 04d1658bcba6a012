package gpu

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// BuildLogWriter persists driver build logs for operator inspection.
type BuildLogWriter interface {
	WriteBuildLog(subject, log string)
}

// FileBuildLog overwrites a single file with the most recent build log.
type FileBuildLog struct {
	Path string
	Log  *zap.Logger
}

// NewFileBuildLog returns a writer targeting path.
func NewFileBuildLog(path string, log *zap.Logger) *FileBuildLog {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileBuildLog{Path: path, Log: log}
}

// WriteBuildLog truncates the target and writes log verbatim. Write failures
// are logged and otherwise ignored; the build error still reaches the caller.
func (f *FileBuildLog) WriteBuildLog(subject, log string) {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			f.Log.Warn("build log dir", zap.String("path", dir), zap.Error(err))
			return
		}
	}
	if err := os.WriteFile(f.Path, []byte(log), 0644); err != nil {
		f.Log.Warn("write build log failed",
			zap.String("subject", subject),
			zap.String("path", f.Path),
			zap.Error(err),
		)
		return
	}
	f.Log.Debug("build log written", zap.String("subject", subject), zap.String("path", f.Path))
}

type discardBuildLog struct{}

func (discardBuildLog) WriteBuildLog(string, string) {}

// DiscardBuildLog drops build logs. The error returned to the caller still
// carries the text.
var DiscardBuildLog BuildLogWriter = discardBuildLog{}
