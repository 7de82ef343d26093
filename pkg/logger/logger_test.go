package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitStampsServiceField(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	log.Info().Msg("engine up")

	line := buf.String()
	if !strings.Contains(line, `"service":"tracking-api"`) {
		t.Fatalf("expected default service field, got %s", line)
	}
	if !strings.Contains(line, `"message":"engine up"`) {
		t.Fatalf("message missing: %s", line)
	}
}

func TestInitCustomService(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Service: "refresh-worker", Output: &buf})
	log.Warn().Msg("queue full")

	if !strings.Contains(buf.String(), `"service":"refresh-worker"`) {
		t.Fatalf("expected custom service field, got %s", buf.String())
	}
}

func TestInitLevelFiltering(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf})
	log.Debug().Msg("invisible")

	if buf.Len() != 0 {
		t.Fatalf("debug line must be filtered at warn level: %s", buf.String())
	}
}

func TestGetBeforeInitPanics(t *testing.T) {
	Reset()
	defer Reset()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}
