package xlogger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level      string `yaml:"level" default:"info"`
	LogType    string `yaml:"log_type" default:"text"`
	AddSource  bool   `yaml:"add_source"`
	SourcePath string `yaml:"source_path"`
}

func New(conf Config) *zap.Logger {
	return NewWithSink(conf, zapcore.Lock(os.Stdout))
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// NewWithSink is New writing to sink instead of stdout.
func NewWithSink(conf Config, sink zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(getEncoder(conf), sink, getLogLevel(conf.Level))

	var opts []zap.Option
	if conf.AddSource {
		opts = append(opts, zap.AddCaller())
	}

	return zap.New(core, opts...)
}

func getLogLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
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

func getEncoder(conf Config) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = callerEncoder(conf)

	switch strings.ToLower(conf.LogType) {
	case "json":
		return zapcore.NewJSONEncoder(encoderConfig)

	default:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
}

func callerEncoder(conf Config) zapcore.CallerEncoder {
	return func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(trimSource(caller.File, caller.Line, conf.SourcePath))
	}
}

func trimSource(file string, line int, sourcePath string) string {
	sourceFile := fmt.Sprintf("%s:%d", file, line)

	if len(sourcePath) > 0 {
		if strings.HasPrefix(file, sourcePath) {
			sourceFile = fmt.Sprintf("%s:%d", strings.TrimPrefix(file, sourcePath), line)

		} else if index := strings.Index(file, sourcePath); index > 0 {
			sourceFileSuffix := file[index+len(sourcePath):]
			sourceFile = fmt.Sprintf("%s:%d", sourceFileSuffix, line)
		}
	}

	return sourceFile
}
