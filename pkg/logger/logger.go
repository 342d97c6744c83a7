package logger

import (
	"builderboard/conf"
	"os"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	l     *zap.Logger
	sugar *zap.SugaredLogger
)

func init() {
	// 未初始化前使用默认的开发日志，避免测试和工具代码里空指针
	l, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
	sugar = l.Sugar()
}

// InitLogger 根据配置初始化全局日志，文件按 lumberjack 规则切割
func InitLogger(cfg *conf.LogConfig, appName string) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = zapcore.InfoLevel
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	if cfg.FileName != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}
	if cfg.Console || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level))
	}

	l = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Named(appName)
	sugar = l.Sugar()
}

// Default 返回底层的 zap logger
func Default() *zap.Logger {
	return l
}

// Pair 生成一个结构化字段
func Pair(key string, v interface{}) zap.Field {
	switch val := v.(type) {
	case string:
		return zap.String(key, val)
	case time.Duration:
		return zap.Duration(key, val)
	case error:
		return zap.NamedError(key, val)
	default:
		return zap.Any(key, val)
	}
}

func Sync() {
	_ = l.Sync()
}

func Debug(msg string, fields ...zap.Field) { l.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { l.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { l.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { l.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { l.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { sugar.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { sugar.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { sugar.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { sugar.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { sugar.Fatalf(format, args...) }

// Resty 适配 resty.Logger 接口，让 http 客户端的日志走同一个输出
type Resty struct{}

func (Resty) Errorf(format string, v ...interface{}) { sugar.Errorf(format, v...) }
func (Resty) Warnf(format string, v ...interface{})  { sugar.Warnf(format, v...) }
func (Resty) Debugf(format string, v ...interface{}) { sugar.Debugf(format, v...) }
