package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// helper resets output and thresholds and returns buffer and logger
func newTestLogger(t *testing.T, name string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetLevel(LevelInfo)
	ResetCategoryLevels()
	if err := SetFormat(FormatJSON); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		SetLevel(LevelInfo)
		ResetCategoryLevels()
	})
	return ForCategory(name), buf
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		rec := map[string]any{}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid JSON record %q: %v", line, err)
		}
		out = append(out, rec)
	}
	return out
}

func TestJSONRecordFields(t *testing.T) {
	const name = "json_record_test"
	l, buf := newTestLogger(t, name)

	l.Info("hello world")

	recs := records(t, buf)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %q", len(recs), buf.String())
	}
	rec := recs[0]
	if rec["log_category"] != name {
		t.Errorf("expected category %q, got %v", name, rec["log_category"])
	}
	if rec["log_level"] != "info" {
		t.Errorf("expected level info, got %v", rec["log_level"])
	}
	if rec["log_message"] != "hello world" {
		t.Errorf("expected message, got %v", rec["log_message"])
	}
	for _, key := range []string{"server_timestamp", "server_host", "server_pid"} {
		if _, ok := rec[key]; !ok {
			t.Errorf("expected key %s in record %v", key, rec)
		}
	}
}

func TestEveryLevelIsEncoded(t *testing.T) {
	l, buf := newTestLogger(t, "every_level_test")
	SetCategoryLevel("every_level_test", LevelTrace)

	l.Trace("t")
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	l.Critical("c")

	recs := records(t, buf)
	want := []string{"trace", "debug", "info", "warn", "error", "critical"}
	if len(recs) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(recs))
	}
	for i, rec := range recs {
		if rec["log_level"] != want[i] {
			t.Errorf("record %d: expected level %s, got %v", i, want[i], rec["log_level"])
		}
	}
}

func TestThresholdDropsLowerLevels(t *testing.T) {
	l, buf := newTestLogger(t, "threshold_test")

	l.Debug("should not appear")
	l.Trace("nor this")
	if buf.Len() != 0 {
		t.Fatalf("records below INFO appeared: %q", buf.String())
	}

	SetLevel(LevelDebug)
	l.Debug("visible now")
	if !strings.Contains(buf.String(), "visible now") {
		t.Fatalf("expected debug record after lowering threshold; got: %q", buf.String())
	}
}

func TestCategoryOverride(t *testing.T) {
	quiet, buf := newTestLogger(t, "override_quiet")
	loud := ForCategory("override_loud")

	SetLevel(LevelWarn)
	SetCategoryLevel("override_loud", LevelTrace)

	quiet.Info("hidden")
	loud.Trace("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("global threshold ignored: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("category override ignored: %q", out)
	}

	ResetCategoryLevel("override_loud")
	if Enabled("override_loud", LevelTrace) {
		t.Error("expected override to be dropped")
	}
}

func TestMessageIsVerbatim(t *testing.T) {
	l, buf := newTestLogger(t, "verbatim_test")

	msg := "100% {not} a %s format\twith\ttabs"
	l.Error(msg)

	recs := records(t, buf)
	if len(recs) != 1 || recs[0]["log_message"] != msg {
		t.Fatalf("expected verbatim message %q, got %v", msg, recs)
	}
}

func TestFormatHelpers(t *testing.T) {
	l, buf := newTestLogger(t, "format_helpers_test")

	l.Warnf("rate limit low: %d", 3)
	if !strings.Contains(buf.String(), "rate limit low: 3") {
		t.Fatalf("expected formatted message, got: %q", buf.String())
	}
}

func TestConsoleFormat(t *testing.T) {
	l, buf := newTestLogger(t, "console_test")
	if err := SetFormat(FormatConsole); err != nil {
		t.Fatal(err)
	}
	defer SetFormat(FormatJSON)

	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	orig := Timestamp
	Timestamp = func() time.Time { return fixed }
	defer func() { Timestamp = orig }()

	l.Critical("disk on fire")
	out := buf.String()
	if !strings.HasPrefix(out, "2024-01-02T03:04:05Z\tcritical\tdisk on fire") {
		t.Fatalf("unexpected console record: %q", out)
	}
	if !strings.Contains(out, `"log_category": "console_test"`) {
		t.Errorf("expected category field in console record: %q", out)
	}
	if CurrentFormat() != FormatConsole {
		t.Errorf("expected console format, got %s", CurrentFormat())
	}
}

func TestForCategoryMemoizes(t *testing.T) {
	if ForCategory("memo") != ForCategory("memo") {
		t.Error("expected the same logger for the same category")
	}
	if ForCategory("").Name() != "unknown" {
		t.Error("expected empty category to become unknown")
	}
}

func TestInvalidSettingsIgnored(t *testing.T) {
	newTestLogger(t, "invalid_settings")

	SetLevel(Level(42))
	if GetLevel() != LevelInfo {
		t.Errorf("invalid level should be ignored, got %s", GetLevel())
	}
	if err := SetFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	SetOutput(nil)
}
