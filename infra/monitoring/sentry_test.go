package monitoring

import (
	"testing"

	coremon "github.com/LithiraHettiarachchi/gridSense/core/monitoring"
)

func TestNewSentryMonitor_EmptyDSN(t *testing.T) {
	m, err := NewSentryMonitor(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(coremon.NopMonitor); !ok {
		t.Fatalf("expected NopMonitor, got %T", m)
	}
}

func TestNewSentryMonitor_InvalidDSN(t *testing.T) {
	if _, err := NewSentryMonitor(Config{DSN: "not a dsn"}); err == nil {
		t.Fatalf("expected error for invalid DSN")
	}
}

func TestNewSentryMonitor_ValidDSN(t *testing.T) {
	m, err := NewSentryMonitor(Config{DSN: "https://public@o0.ingest.sentry.io/1", Environment: "test"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, ok := m.(*sentryMonitor); !ok {
		t.Fatalf("expected sentry monitor, got %T", m)
	}
	m.CaptureException(nil, nil)
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{TracesSampleRate: 2}).Validate(); err == nil {
		t.Fatalf("expected sample rate error")
	}
	if err := (Config{TracesSampleRate: 0.2}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
