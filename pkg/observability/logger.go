// Package observability 提供全局 zap 日志器
//
// 未初始化时 GetLogger 返回 Nop 日志器，与“默认静默运行”的约定一致；
// 传入 --verbose 后由 cmd 层调用 Initialize 打开输出。
package observability

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/decker502/hoverburst/pkg/config"
)

var (
	globalLogger atomic.Pointer[zap.Logger]
	once         sync.Once
)

// Initialize 按设置创建全局日志器，只生效一次
func Initialize(cfg config.LoggerSettings, out zapcore.WriteSyncer) {
	once.Do(func() {
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level.SetLevel(zap.InfoLevel)
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

		var encoder zapcore.Encoder
		if cfg.Format == "json" {
			encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		} else {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		}

		logger := zap.New(zapcore.NewCore(encoder, out, level)).Named("hoverburst")
		globalLogger.Store(logger)
		zap.ReplaceGlobals(logger)
	})
}

// InitializeLogger 输出到标准错误
func InitializeLogger(cfg config.LoggerSettings) {
	Initialize(cfg, zapcore.Lock(os.Stderr))
}

// GetLogger 返回全局日志器，未初始化时返回 Nop
func GetLogger() *zap.Logger {
	if logger := globalLogger.Load(); logger != nil {
		return logger
	}
	return zap.NewNop()
}

// Sync 刷新缓冲日志，退出前调用
func Sync() {
	if logger := globalLogger.Load(); logger != nil {
		_ = logger.Sync()
	}
}

// ResetForTest 重置全局日志器，仅供测试使用
func ResetForTest() {
	globalLogger.Store(nil)
	once = sync.Once{}
}
