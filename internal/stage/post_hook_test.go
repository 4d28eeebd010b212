package stage

import (
	"context"
	"errors"
	"testing"
)

func postMeta(t *testing.T, script string) *Meta {
	t.Helper()
	meta := DefaultMeta("x.csv")
	meta.Post = &PostMeta{
		Script: writeFile(t, "hook.lua", script),
		Libs:   LuaLibsMeta{Base: true, Table: true, String: true, Math: true},
	}
	return meta
}

func floatPtr(v float64) *float64 { return &v }

func TestPostHookClampsResult(t *testing.T) {
	meta := postMeta(t, "yhat = math.min(math.max(yhat, 0), 10)")
	in := Envelope{Meta: meta, Series: seriesOf(1, 2), Result: floatPtr(12.7)}
	out, err := Run(context.Background(), "post-hook", in, Deps{})
	if err != nil {
		t.Fatalf("post-hook: %v", err)
	}
	if out.Result == nil || *out.Result != 10 {
		t.Fatalf("unexpected result: %v", out.Result)
	}
}

func TestPostHookSeesCount(t *testing.T) {
	meta := postMeta(t, "yhat = count")
	in := Envelope{Meta: meta, Series: seriesOf(1, 2, 3), Result: floatPtr(0)}
	out, err := Run(context.Background(), "post-hook", in, Deps{})
	if err != nil {
		t.Fatalf("post-hook: %v", err)
	}
	if *out.Result != 3 {
		t.Fatalf("unexpected result: %v", *out.Result)
	}
}

func TestPostHookScriptError(t *testing.T) {
	meta := postMeta(t, `error("boom")`)
	in := Envelope{Meta: meta, Series: seriesOf(1), Result: floatPtr(1)}
	_, err := Run(context.Background(), "post-hook", in, Deps{})
	var hookErr PostHookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("expected PostHookError, got %v", err)
	}
}

func TestPostHookNonNumericResult(t *testing.T) {
	meta := postMeta(t, `yhat = "high"`)
	in := Envelope{Meta: meta, Series: seriesOf(1), Result: floatPtr(1)}
	_, err := Run(context.Background(), "post-hook", in, Deps{})
	var hookErr PostHookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("expected PostHookError, got %v", err)
	}
}

func TestPostHookTimeout(t *testing.T) {
	meta := postMeta(t, "while true do end")
	meta.Post.TimeoutMs = 50
	in := Envelope{Meta: meta, Series: seriesOf(1), Result: floatPtr(1)}
	_, err := Run(context.Background(), "post-hook", in, Deps{})
	var hookErr PostHookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("expected PostHookError, got %v", err)
	}
}

func TestPostHookMissingScriptFile(t *testing.T) {
	meta := DefaultMeta("x.csv")
	meta.Post = &PostMeta{Script: "absent.lua", Libs: LuaLibsMeta{Base: true}}
	in := Envelope{Meta: meta, Series: seriesOf(1), Result: floatPtr(1)}
	_, err := Run(context.Background(), "post-hook", in, Deps{})
	var hookErr PostHookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("expected PostHookError, got %v", err)
	}
}

func TestPostHookSkippedWithoutScript(t *testing.T) {
	in := Envelope{Meta: DefaultMeta("x.csv"), Series: seriesOf(1), Result: floatPtr(2.5)}
	out, err := Run(context.Background(), "post-hook", in, Deps{})
	if err != nil {
		t.Fatalf("post-hook: %v", err)
	}
	if *out.Result != 2.5 {
		t.Fatalf("result changed without a script")
	}
}

func TestPostHookSkippedOnNullResult(t *testing.T) {
	meta := postMeta(t, "yhat = 99")
	in := Envelope{Meta: meta, Done: true}
	out, err := Run(context.Background(), "post-hook", in, Deps{})
	if err != nil {
		t.Fatalf("post-hook: %v", err)
	}
	if out.Result != nil {
		t.Fatalf("null result must stay null")
	}
}
