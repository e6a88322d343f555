package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/config"
)

var (
	// Logger 全局日志实例
	Logger *zap.Logger
	// Sugar 带语法糖的日志实例（支持格式化）
	Sugar *zap.SugaredLogger
)

// Init 初始化日志系统
func Init(cfg *config.LoggingConfig) error {
	// 解析日志级别
	level := parseLevel(cfg.Level)

	// 创建编码器配置（美化输出）
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder, // 彩色级别
		EncodeTime:     zapcore.ISO8601TimeEncoder,       // ISO8601 时间格式
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder, // 短文件名
	}

	var cores []zapcore.Core

	// 根据配置决定输出位置
	switch cfg.Output {
	case "file":
		// 仅输出到文件（不带颜色）
		fileEncoderConfig := encoderConfig
		fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		fileWriter, err := getFileWriter(cfg.File)
		if err != nil {
			return err
		}

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig), // 文件用JSON格式
			zapcore.AddSync(fileWriter),
			level,
		)
		cores = append(cores, fileCore)

	case "both":
		// 同时输出到控制台和文件
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		)
		cores = append(cores, consoleCore)

		fileEncoderConfig := encoderConfig
		fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		fileWriter, err := getFileWriter(cfg.File)
		if err != nil {
			return err
		}

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig),
			zapcore.AddSync(fileWriter),
			level,
		)
		cores = append(cores, fileCore)

	default:
		// 默认输出到控制台
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		)
		cores = append(cores, consoleCore)
	}

	// 创建 logger
	core := zapcore.NewTee(cores...)
	Logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	Sugar = Logger.Sugar()

	// 设置为全局 logger
	zap.ReplaceGlobals(Logger)

	Sugar.Infof("Logger initialized: output=%s, level=%s", cfg.Output, cfg.Level)
	return nil
}

// getFileWriter 获取文件写入器
func getFileWriter(logFile string) (*os.File, error) {
	// 确保日志目录存在
	logDir := filepath.Dir(logFile)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	// 打开或创建日志文件（追加模式）
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return file, nil
}

// parseLevel 解析日志级别
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Debug 输出 Debug 级别日志
func Debug(args ...interface{}) {
	ensureLogger()
	Sugar.Debug(args...)
}

// Debugf 格式化输出 Debug 级别日志
func Debugf(template string, args ...interface{}) {
	ensureLogger()
	Sugar.Debugf(template, args...)
}

// Info 输出 Info 级别日志
func Info(args ...interface{}) {
	ensureLogger()
	Sugar.Info(args...)
}

// Infof 格式化输出 Info 级别日志
func Infof(template string, args ...interface{}) {
	ensureLogger()
	Sugar.Infof(template, args...)
}

// Warn 输出 Warn 级别日志
func Warn(args ...interface{}) {
	ensureLogger()
	Sugar.Warn(args...)
}

// Warnf 格式化输出 Warn 级别日志
func Warnf(template string, args ...interface{}) {
	ensureLogger()
	Sugar.Warnf(template, args...)
}

// Error 输出 Error 级别日志
func Error(args ...interface{}) {
	ensureLogger()
	Sugar.Error(args...)
}

// Errorf 格式化输出 Error 级别日志
func Errorf(template string, args ...interface{}) {
	ensureLogger()
	Sugar.Errorf(template, args...)
}

// Fatalf 格式化输出 Fatal 级别日志并退出
func Fatalf(template string, args ...interface{}) {
	ensureLogger()
	Sugar.Fatalf(template, args...)
}

// ensureLogger 确保 logger 已初始化（测试等场景下未调用 Init 时回退到默认配置）
func ensureLogger() {
	if Sugar == nil {
		Logger, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
		Sugar = Logger.Sugar()
	}
}
