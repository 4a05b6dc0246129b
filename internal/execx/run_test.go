package execx

import (
	"context"
	"strings"
	"testing"
)

func TestRunCtxZeroExit(t *testing.T) {
	res := RunCtx(context.Background(), "sh", "-c", "exit 0")
	if res.Code != 0 || res.Err != nil {
		t.Fatalf("expected clean exit, got %+v", res)
	}
}

func TestRunCtxNonZeroExit(t *testing.T) {
	res := RunCtx(context.Background(), "sh", "-c", "exit 7")
	if res.Code != 7 {
		t.Fatalf("expected code 7, got %+v", res)
	}
	if res.Err == nil {
		t.Fatal("expected non-nil error for non-zero exit")
	}
}

func TestRunCtxMissingBinary(t *testing.T) {
	res := RunCtx(context.Background(), "definitely-not-a-binary-kebechet")
	if res.Code != 1 || res.Err == nil {
		t.Fatalf("launch failure should map to code 1, got %+v", res)
	}
}

func TestCapture(t *testing.T) {
	out, res := Capture(context.Background(), "sh", "-c", "echo hello")
	if res.Code != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Fatalf("unexpected output %q", out)
	}
}
