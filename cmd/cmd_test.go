package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rubiojr/msilog/pkg/config"
	"github.com/rubiojr/msilog/pkg/core"
	"github.com/rubiojr/msilog/pkg/log"
)

func TestBuildParams(t *testing.T) {
	params, err := buildParams([]string{"INFO", "hello", "12"}, []int{1}, []int{3})
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	if len(params) != 3 {
		t.Fatalf("expected 3 params, got %d", len(params))
	}
	if params[0] != nil {
		t.Errorf("expected first param to be absent, got %v", params[0])
	}
	if s, ok := core.ParseForStr(params[1]); !ok || s != "hello" {
		t.Errorf("expected string param, got %v", params[1])
	}
	if params[2].Type != core.IntMsT || params[2].Value != 12 {
		t.Errorf("expected integer param, got %v", params[2])
	}
}

func TestBuildParamsErrors(t *testing.T) {
	if _, err := buildParams([]string{"a"}, []int{2}, nil); err == nil {
		t.Error("expected out of range error")
	}
	if _, err := buildParams([]string{"a"}, nil, []int{0}); err == nil {
		t.Error("expected out of range error for position 0")
	}
	if _, err := buildParams([]string{"abc"}, nil, []int{1}); err == nil {
		t.Error("expected integer parse error")
	}
}

func TestApplyLogConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msilog.log")
	lc := config.GetDefaultConfig().Log
	lc.Level = log.LevelWarn
	lc.Output = path
	lc.Categories["legacy"] = log.LevelTrace

	closer, err := applyLogConfig(lc, false)
	if err != nil {
		t.Fatalf("applyLogConfig: %v", err)
	}
	log.ForCategory("legacy").Trace("kept")
	log.ForCategory("other").Info("dropped")
	closer()
	defer func() {
		log.SetLevel(log.LevelInfo)
		log.ResetCategoryLevels()
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "kept") || strings.Contains(out, "dropped") {
		t.Errorf("unexpected log file contents: %q", out)
	}
}

func TestApplyLogConfigDebug(t *testing.T) {
	lc := config.GetDefaultConfig().Log
	lc.Level = log.LevelError

	closer, err := applyLogConfig(lc, true)
	if err != nil {
		t.Fatal(err)
	}
	defer closer()
	defer log.SetLevel(log.LevelInfo)

	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	defer log.SetOutput(os.Stderr)

	logger.Debug("debug visible")
	if !strings.Contains(buf.String(), "debug visible") {
		t.Errorf("--debug should lower the threshold, got %q", buf.String())
	}
}

func TestApplyLogConfigBadOutput(t *testing.T) {
	lc := config.GetDefaultConfig().Log
	lc.Output = filepath.Join(t.TempDir(), "missing", "dir", "out.log")
	if _, err := applyLogConfig(lc, false); err == nil {
		t.Error("expected error opening log output in a missing directory")
	}
}
