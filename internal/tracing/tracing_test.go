package tracing

import (
	"context"
	"strings"
	"testing"
)

func TestInitDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	shutdown, err := Init(context.Background(), "flawless")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestInitSDKDisabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("OTEL_SDK_DISABLED", "true")

	if _, err := Init(context.Background(), "flawless"); err != nil {
		t.Fatalf("Init: %v", err)
	}
}

func TestInitUnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("OTEL_SDK_DISABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")

	shutdown, err := Init(context.Background(), "flawless")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		name, arg string
		want      string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.25", "TraceIDRatioBased{0.25}"},
		{"parentbased_traceidratio", "0.5", "TraceIDRatioBased{0.5}"},
		{"parentbased_always_off", "", "AlwaysOffSampler"},
		{"", "", "ParentBased{root:AlwaysOnSampler"},
		{"traceidratio", "not-a-number", "AlwaysOnSampler"}, // ratio 1 samples everything
	}
	for _, tt := range tests {
		got := sampler(tt.name, tt.arg).Description()
		if !strings.Contains(got, tt.want) {
			t.Errorf("sampler(%q, %q) = %q, want it to contain %q", tt.name, tt.arg, got, tt.want)
		}
	}
}
