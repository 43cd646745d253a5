package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var sugaredLogger *zap.SugaredLogger
var logger *zap.Logger

// Trace enables per-message logging on publish and drain paths.
var Trace bool

var Config = zap.NewDevelopmentConfig()

func init() {
	Config.EncoderConfig.NewReflectedEncoder = func(w io.Writer) zapcore.ReflectedEncoder {
		return yaml.NewEncoder(w)
	}
	Config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	Config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	Config.Level.SetLevel(zapcore.InfoLevel)
	logger = zap.New(
		zapcore.NewCore(zapcore.NewConsoleEncoder(Config.EncoderConfig), zapcore.Lock(zapcore.AddSync(multipleWriter)), Config.Level),
	)
	sugaredLogger = logger.Sugar()
}

type Zap interface {
	With(fields ...zap.Field) *zap.Logger
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// SetLevel changes the level of every logger derived from this package.
// "trace" is debug level with Trace switched on.
func SetLevel(level string) error {
	if Trace = level == "trace"; Trace {
		level = "debug"
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	Config.Level.SetLevel(l)
	return nil
}

func Logger() *zap.Logger {
	return logger
}

func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}

func Sync() error {
	return logger.Sync()
}
