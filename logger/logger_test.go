package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitReadsEnvironment(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	cases := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"defaults", "", "", logrus.InfoLevel, false},
		{"debug_json", "debug", "JSON", logrus.DebugLevel, true},
		{"bad_level", "loud", "text", logrus.InfoLevel, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", c.level)
			t.Setenv("LOG_FORMAT", c.format)
			Init()
			if Log.GetLevel() != c.wantLevel {
				t.Fatalf("level = %v, want %v", Log.GetLevel(), c.wantLevel)
			}
			_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
			if isJSON != c.wantJSON {
				t.Fatalf("json formatter = %v, want %v", isJSON, c.wantJSON)
			}
		})
	}
}

func TestNewWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Format: "json"}, &buf)
	l.WithField("item", 7).Debug("item equipped")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got["msg"] != "item equipped" || got["item"] != float64(7) {
		t.Fatalf("entry = %v", got)
	}
}

func TestDefaultLoggerDiscards(t *testing.T) {
	if newDiscard().Out != io.Discard {
		t.Fatalf("default logger should discard output")
	}
}
