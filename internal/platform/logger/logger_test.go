package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "pgnframe/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"", zerolog.InfoLevel},
		{"  loud  ", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	if got := resolveFormat(FormatAuto, &buf); got != FormatJSON {
		t.Fatalf("auto on buffer = %q, want json", got)
	}
	if got := resolveFormat(FormatConsole, &buf); got != FormatConsole {
		t.Fatalf("explicit console = %q", got)
	}
	if got := resolveFormat("", &buf); got != FormatJSON {
		t.Fatalf("empty format = %q", got)
	}
}

func TestInit_Get_Named_C(t *testing.T) {
	var buf bytes.Buffer

	Init(Options{
		Level:        "info",
		Format:       FormatConsole,
		Service:      "pgnframe-test",
		Component:    "root",
		Writer:       &buf,
		WithCaller:   true,
		SampleEvery:  2,
		StaticFields: map[string]string{"build": "test"},
	})

	// resample to N=1 so every line is written
	rv := Get().Sample(&zerolog.BasicSampler{N: 1})
	rv.Info().Str("k", "v").Msg("root-msg")

	nv := Named("ingest").Sample(&zerolog.BasicSampler{N: 1})
	nv.Info().Msg("named-msg")

	ctx := WithRun(WithRequest(context.Background(), "req-123"), "run-abc")
	cv := C(ctx).Sample(&zerolog.BasicSampler{N: 1})
	cv.Info().Msg("ctx-msg")

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, "ctx-msg")
	kit.MustContain(t, out, "ingest")
	kit.MustContain(t, out, "request_id=")
	kit.MustContain(t, out, "req-123")
	kit.MustContain(t, out, "run_id=")
	kit.MustContain(t, out, "run-abc")
	kit.MustContain(t, out, "build=")
	kit.MustContain(t, out, "pgnframe-test")

	if RunID(ctx) != "run-abc" {
		t.Fatalf("RunID = %q", RunID(ctx))
	}
	if Named("") != Get() {
		t.Fatalf("Named(\"\") should return root")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_COMPONENT", "comp-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != FormatJSON {
		t.Fatalf("level/format = %q/%q", opt.Level, opt.Format)
	}
	if opt.Service != "svc-b" || opt.Component != "comp-b" {
		t.Fatalf("service/component = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample = %+v", opt)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_SERVICE"} {
		t.Setenv(k, "")
	}
	opt := FromEnv()
	if opt.Format != FormatAuto || opt.Service != "pgnframe" {
		t.Fatalf("defaults = %+v", opt)
	}
	if !strings.EqualFold(opt.Level, "info") {
		t.Fatalf("level default = %q", opt.Level)
	}
}

func TestContext_NoValues(t *testing.T) {
	ctx := WithRun(WithRequest(context.Background(), ""), "")
	if RunID(ctx) != "" {
		t.Fatalf("empty ids must not be stored")
	}
	Nop().Info().Msg("dropped")
}
