// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

// The tests below swap the global logger and must not run in parallel.

func TestInit_JSONOutput(t *testing.T) {
	prev := Logger()
	prevLevel := GetLevel()
	defer func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	}()

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf, Timestamp: true})

	Debug().Str("slug", "spirited-away").Msg("debug entry")
	Info().Int("page", 2).Msg("info entry")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["level"] != "debug" {
		t.Errorf("level: expected debug, got %v", entry["level"])
	}
	if entry["message"] != "debug entry" {
		t.Errorf("message: expected %q, got %v", "debug entry", entry["message"])
	}
	if entry["slug"] != "spirited-away" {
		t.Errorf("slug: expected spirited-away, got %v", entry["slug"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected time field")
	}
}

func TestInit_LevelFilters(t *testing.T) {
	prev := Logger()
	prevLevel := GetLevel()
	defer func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	}()

	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})

	Info().Msg("hidden")
	Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn entry should be written")
	}
	if GetLevel() != zerolog.WarnLevel {
		t.Errorf("level: expected warn, got %v", GetLevel())
	}

	SetLevelString("info")
	Info().Msg("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevelString should lower the threshold")
	}
}

func TestInit_ConsoleFormat(t *testing.T) {
	prev := Logger()
	prevLevel := GetLevel()
	defer func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	}()

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	Info().Msg("console entry")

	out := buf.String()
	if !strings.Contains(out, "console entry") {
		t.Fatalf("missing message: %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console output should not be JSON: %q", out)
	}
}

func TestWithComponent(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	l := WithComponent("sync")
	l.Info().Msg("tagged")

	if !strings.Contains(buf.String(), `"component":"sync"`) {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestErr(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	Err(errTest).Msg("with error")
	if !strings.Contains(buf.String(), `"error":"boom"`) || !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("boom")
