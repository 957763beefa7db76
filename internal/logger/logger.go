// Package logger provides the structured run logger for fraudprep.
//
// Every entry of a run carries the run id. Stage loggers add the pipeline
// step (load, split, fit, transform, inspect) and, where a file is involved,
// the dataset path.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbsmedya/fraudprep/internal/config"
)

// Field keys attached by the context helpers.
const (
	RunKey     = "run"
	StageKey   = "stage"
	DatasetKey = "dataset"
)

// Logger is a zap SugaredLogger bound to one run.
type Logger struct {
	*zap.SugaredLogger
	base  *zap.Logger
	close func()
}

// New opens the configured output and returns a logger for the run
// identified by runID. An empty runID leaves the run field off.
// Output is "stderr" (the default), "stdout" or a file path, appended to.
func New(cfg *config.LoggingConfig, runID string) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	sink, closeSink, err := zap.Open(output)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %s: %w", output, err)
	}

	l := newRunLogger(zapcore.NewCore(newEncoder(cfg.Format), sink, level), runID)
	l.close = closeSink
	return l, nil
}

func newRunLogger(core zapcore.Core, runID string) *Logger {
	base := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if runID != "" {
		base = base.With(zap.String(RunKey, runID))
	}
	return &Logger{SugaredLogger: base.Sugar(), base: base, close: func() {}}
}

// parseLevel accepts zap level names; empty means info.
func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// newEncoder returns a JSON encoder for "json" and a colored console
// encoder otherwise.
func newEncoder(format string) zapcore.Encoder {
	if format == "json" {
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "time"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(enc)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(enc)
}

func (l *Logger) with(key, value string) *Logger {
	base := l.base.With(zap.String(key, value))
	return &Logger{SugaredLogger: base.Sugar(), base: base, close: l.close}
}

// WithStage tags entries with a pipeline step.
func (l *Logger) WithStage(stage string) *Logger {
	return l.with(StageKey, stage)
}

// WithDataset tags entries with the input file.
func (l *Logger) WithDataset(path string) *Logger {
	return l.with(DatasetKey, path)
}

// Close flushes buffered entries and releases a file output.
// Loggers derived with WithStage or WithDataset share the output, so only
// the run logger should be closed.
func (l *Logger) Close() error {
	err := l.base.Sync()
	l.close()
	return err
}
