package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotspec/pkg/errors"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("cell rendered") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("cell rendered") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("cell rendered") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"text", log.TextFormatter},
		{"JSON", log.JSONFormatter},
		{" logfmt ", log.LogfmtFormatter},
	}
	for _, tt := range tests {
		got, err := parseLogFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseLogFormat(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := parseLogFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("parseLogFormat(xml) error = %v", err)
	}
}

func TestProgressJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.SetFormatter(log.JSONFormatter)

	newProgress(logger).done("render complete", "files", 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if entry["msg"] != "render complete" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["files"] != float64(2) {
		t.Errorf("files = %v", entry["files"])
	}
	if _, ok := entry["elapsed"]; !ok {
		t.Error("missing elapsed field")
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	got.Info("watching", "path", "fig.yaml")
	if !strings.Contains(buf.String(), "path=fig.yaml") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestLogFormatFlag(t *testing.T) {
	if err := execute(t, "formats", "--log-format", "json"); err != nil {
		t.Errorf("formats --log-format json: %v", err)
	}
	if err := execute(t, "formats", "--log-format", "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad --log-format error = %v", err)
	}
}
