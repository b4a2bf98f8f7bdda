package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/c14220110/poliklinik-analytics/config"
)

// ServiceName tags every log line of this process.
const ServiceName = "poliklinik-analytics"

// New builds the process logger from the configuration. LOG_FORMAT picks
// "json" or "console"; when unset, development runs log to the console.
// Unknown levels fall back to info.
func New(cfg *config.Config) (*zap.Logger, error) {
	return newWithSink(cfg, zapcore.Lock(os.Stdout))
}

func newWithSink(cfg *config.Config, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil {
		level = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	if useConsole(cfg) {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(enc)
	} else {
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "timestamp"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(enc)
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level))
	fields := []zap.Field{
		zap.String("service", ServiceName),
		zap.String("env", cfg.AppEnv),
		zap.String("store", cfg.StoreBackend),
		zap.String("provider", cfg.ProviderBackend),
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		fields = append(fields, zap.String("hostname", hostname))
	}
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).With(fields...), nil
}

func useConsole(cfg *config.Config) bool {
	switch strings.ToLower(cfg.LogFormat) {
	case "console":
		return true
	case "json":
		return false
	}
	return cfg.AppEnv == "development"
}
