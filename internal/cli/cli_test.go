package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommand(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root use = %q, want %q", root.Use, appName)
	}

	want := []string{"plan", "arrange", "fit", "serve", "preview", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestParseCanvas(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantW   float64
		wantH   float64
		wantErr bool
	}{
		{name: "empty means default", input: "", wantW: 720, wantH: 405},
		{name: "widescreen", input: "960x540", wantW: 960, wantH: 540},
		{name: "fractional", input: "720.5x405.5", wantW: 720.5, wantH: 405.5},
		{name: "garbage", input: "big", wantErr: true},
		{name: "missing height", input: "960", wantErr: true},
		{name: "negative", input: "-10x405", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, err := parseCanvas(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCanvas(%q) error: %v", tt.input, err)
			}
			if size.Width != tt.wantW || size.Height != tt.wantH {
				t.Errorf("parseCanvas(%q) = %+v", tt.input, size)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 10); got != "short" {
		t.Errorf("truncateText(short) = %q", got)
	}
	if got := truncateText("a longer headline here", 10); len([]rune(got)) != 10 {
		t.Errorf("truncateText length = %d, want 10", len([]rune(got)))
	}
}
