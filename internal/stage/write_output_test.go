package stage

import (
	"context"
	"io"
	"os"
	"testing"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	oldStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	if err := fn(); err != nil {
		t.Fatalf("run: %v", err)
	}
	_ = w.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(got)
}

func TestRenderResult(t *testing.T) {
	tests := []struct {
		yhat *float64
		want string
	}{
		{yhat: nil, want: `{"yhat": null}`},
		{yhat: floatPtr(3.25), want: `{"yhat": 3.25}`},
		{yhat: floatPtr(7), want: `{"yhat": 7}`},
	}
	for _, tt := range tests {
		if got := RenderResult(tt.yhat); got != tt.want {
			t.Fatalf("RenderResult = %q, want %q", got, tt.want)
		}
	}
}

func TestWriteOutputNull(t *testing.T) {
	got := captureStdout(t, func() error {
		_, err := Run(context.Background(), "write-output", Envelope{Done: true}, Deps{})
		return err
	})
	if got != "{\"yhat\": null}\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestWriteOutputValue(t *testing.T) {
	got := captureStdout(t, func() error {
		_, err := Run(context.Background(), "write-output", Envelope{Result: floatPtr(4.125)}, Deps{})
		return err
	})
	if got != "{\"yhat\": 4.125}\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}
