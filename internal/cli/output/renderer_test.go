package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto on tty", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"explicit json", ModeJSON, true, ModeJSON},
		{"explicit markdown on tty", ModeMarkdown, true, ModeMarkdown},
		{"explicit text piped", ModeText, false, ModeText},
		{"unknown piped", Mode("bogus"), false, ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.mode, tt.isTTY)
			if got := r.EffectiveMode(); got != tt.want {
				t.Errorf("EffectiveMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderer_MarkdownTable(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRendererWithTTY(buf, &bytes.Buffer{}, ModeMarkdown, false)

	r.Table([]string{"id", "degree"}, [][]string{
		{"model.a", "2"},
		{"model.b", "1"},
	})

	out := buf.String()
	for _, want := range []string{
		"| id | degree |",
		"| --- | --- |",
		"| model.a | 2 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown table should contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderer_TextTable(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRendererWithTTY(buf, &bytes.Buffer{}, ModeText, false)

	r.Table([]string{"id"}, [][]string{{"model.a"}})

	if !strings.Contains(buf.String(), "model.a") {
		t.Errorf("table should contain the row, got:\n%s", buf.String())
	}
}

func TestRenderer_JSON(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRendererWithTTY(buf, &bytes.Buffer{}, ModeJSON, false)

	if err := r.JSON(ListOutput{Total: 2, Nodes: []ListNode{{ID: "a"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded ListOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output should round-trip: %v", err)
	}
	if decoded.Total != 2 {
		t.Errorf("expected total 2, got %d", decoded.Total)
	}
}

func TestRenderer_ErrorGoesToErrStream(t *testing.T) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	r := NewRendererWithTTY(out, errOut, ModeText, false)

	r.Error("boom")

	if out.Len() != 0 {
		t.Errorf("error should not write to stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("expected error on stderr, got %q", errOut.String())
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatHeader(2, "Summary"); got != "## Summary" {
		t.Errorf("FormatHeader = %q", got)
	}
	if got := FormatHeader(0, "Top"); got != "# Top" {
		t.Errorf("FormatHeader with level 0 = %q", got)
	}
	if got := FormatKeyValue("Degree", "3"); got != "- **Degree:** 3" {
		t.Errorf("FormatKeyValue = %q", got)
	}
}
