package logger

import (
	"os"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	With(fields ...zap.Field) ZapLogger
	Sync() error
}

type ZapLoggerConfig struct {
	IsDevelopment     bool
	Encoding          string
	Level             string
	DisableCaller     bool
	DisableStacktrace bool
	ServiceName       string
}

type zapLogger struct {
	*zap.Logger
}

// NewZapLogger builds the service logger. Extra cores (for example the OTel
// bridge from NewOTelCore) receive every entry alongside the console core.
func NewZapLogger(cfg *ZapLoggerConfig, extra ...zapcore.Core) ZapLogger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zapcore.InfoLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	if cfg.IsDevelopment {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	cores := append([]zapcore.Core{zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)}, extra...)

	opts := []zap.Option{}
	if !cfg.DisableCaller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if !cfg.DisableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	if cfg.IsDevelopment {
		opts = append(opts, zap.Development())
	}
	if cfg.ServiceName != "" {
		opts = append(opts, zap.Fields(zap.String("service.name", cfg.ServiceName)))
	}

	return &zapLogger{zap.New(zapcore.NewTee(cores...), opts...)}
}

// NewOTelCore returns a zap core that forwards entries to the global OTel
// logger provider.
func NewOTelCore(scope string) zapcore.Core {
	return otelzap.NewCore(scope, otelzap.WithLoggerProvider(global.GetLoggerProvider()))
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) ZapLogger {
	return &zapLogger{l}
}

func NewNop() ZapLogger {
	return &zapLogger{zap.NewNop()}
}

func (l *zapLogger) With(fields ...zap.Field) ZapLogger {
	return &zapLogger{l.Logger.With(fields...)}
}
