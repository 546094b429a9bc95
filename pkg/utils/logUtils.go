package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v2"
)

const (
	buildInfoFilename = "build-info.yaml"
	buildInfoPrefix   = "build."

	modulePath = "github.com/helpdesk-tools/survey-report"
)

type BuildInfoMode int

const (
	BuildInfoNever BuildInfoMode = iota
	BuildInfoOnce
	BuildInfoAlways
)

type LoggerConfig struct {
	LogToFile        bool   `json:"log_to_file" yaml:"log_to_file"`
	Filename         string `json:"filename" yaml:"filename"`
	MaxSize          int    `json:"max_size" yaml:"max_size"`
	MaxAge           int    `json:"max_age" yaml:"max_age"`
	MaxBackups       int    `json:"max_backups" yaml:"max_backups"`
	LogLevel         string `json:"log_level" yaml:"log_level"`
	IncludeSrc       bool   `json:"include_src" yaml:"include_src"`
	CompressOldLogs  bool   `json:"compress_old_logs" yaml:"compress_old_logs"`
	IncludeBuildInfo string `json:"include_build_info" yaml:"include_build_info"` // never, always, once
}

// Init sets the default logger from the config section.
func (c LoggerConfig) Init() {
	InitLogger(
		c.LogLevel,
		c.IncludeSrc,
		c.LogToFile,
		c.Filename,
		c.MaxSize,
		c.MaxAge,
		c.MaxBackups,
		c.CompressOldLogs,
		c.IncludeBuildInfo,
	)
}

type CustomHandler struct {
	slog.Handler
	buildInfoAttrs []slog.Attr
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(h.buildInfoAttrs...)
	return h.Handler.Handle(ctx, r)
}

func InitLogger(
	logLevel string,
	includeSrc bool,
	logToFile bool,
	logFilename string,
	logFileMaxSize int,
	logFileMaxAge int,
	logFileMaxBackups int,
	compressOldLogs bool,
	includeBuildInfo string,
) {
	var w io.Writer = os.Stdout
	if logToFile && logFilename != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFilename,
			MaxSize:    logFileMaxSize, // megabytes
			MaxAge:     logFileMaxAge,  // days
			MaxBackups: logFileMaxBackups,
			Compress:   compressOldLogs,
		})
	}

	mode := getBuildInfoMode(includeBuildInfo)
	buildInfoAttrs := []slog.Attr{}
	if mode != BuildInfoNever {
		var err error
		buildInfoAttrs, err = loadBuildInfoAsSlogAttrs(buildInfoFilename, buildInfoPrefix)
		if err != nil {
			fmt.Fprintln(os.Stderr, "build info not available: "+err.Error())
		}
	}

	logger := NewLogger(w, logLevel, includeSrc, mode, buildInfoAttrs)
	slog.SetDefault(logger)

	if mode == BuildInfoOnce && len(buildInfoAttrs) > 0 {
		attrs := make([]any, len(buildInfoAttrs))
		for i, attr := range buildInfoAttrs {
			attrs[i] = attr
		}
		slog.Info("Build info", attrs...)
	}
}

// NewLogger builds the JSON logger written to w.
func NewLogger(w io.Writer, logLevel string, includeSrc bool, mode BuildInfoMode, buildInfoAttrs []slog.Attr) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       logLevelFromString(logLevel),
		AddSource:   includeSrc,
		ReplaceAttr: shortenSource,
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if mode == BuildInfoAlways && len(buildInfoAttrs) > 0 {
		handler = &CustomHandler{Handler: handler, buildInfoAttrs: buildInfoAttrs}
	}
	return slog.New(handler)
}

func shortenSource(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source, _ := a.Value.Any().(*slog.Source)
		if source != nil {
			source.File = filepath.Base(source.File)
			source.Function = strings.TrimPrefix(source.Function, modulePath)
		}
	}
	return a
}

func logLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getBuildInfoMode(includeBuildInfo string) BuildInfoMode {
	switch includeBuildInfo {
	case "always":
		return BuildInfoAlways
	case "once":
		return BuildInfoOnce
	default:
		return BuildInfoNever
	}
}

func loadBuildInfoAsSlogAttrs(filename, prefix string) ([]slog.Attr, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	buildInfo := make(map[string]string)
	if err := yaml.Unmarshal(data, &buildInfo); err != nil {
		return nil, fmt.Errorf("parsing build info: %w", err)
	}

	keys := make([]string, 0, len(buildInfo))
	for k := range buildInfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(buildInfo))
	for _, k := range keys {
		attrs = append(attrs, slog.String(prefix+k, buildInfo[k]))
	}
	return attrs, nil
}
