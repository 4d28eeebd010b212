package stage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const postHookStage = "post-hook"

const defaultPostHookTimeoutMs = 200

func init() {
	Register(postHookStage, postHookRunner)
}

// postHookRunner runs an optional user Lua script over the forecast. The
// script sees the globals `yhat` and `count` and may reassign `yhat`; the
// reassigned value becomes the result. The stage is a no-op when no script
// is configured or when the result is null.
func postHookRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	out := in
	if in.Done || in.Meta == nil || in.Meta.Post == nil || in.Meta.Post.Script == "" {
		return out, nil
	}
	if in.Result == nil {
		return out, nil
	}

	code, err := os.ReadFile(in.Meta.Post.Script)
	if err != nil {
		return Envelope{}, PostHookError{Err: err}
	}

	adjusted, err := runPostScript(string(code), *in.Result, in.Series.Len(), in.Meta.Post)
	if err != nil {
		return Envelope{}, PostHookError{Err: err}
	}

	out.Result = &adjusted
	return out, nil
}

// runPostScript executes the script in a sandboxed interpreter: standard
// libraries are opened only when enabled, and the call is bounded by a
// timeout.
func runPostScript(code string, yhat float64, count int, post *PostMeta) (float64, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	if post.Libs.Base {
		openLib("base", lua.OpenBase)
	}
	if post.Libs.String {
		openLib("string", lua.OpenString)
	}
	if post.Libs.Table {
		openLib("table", lua.OpenTable)
	}
	if post.Libs.Math {
		openLib("math", lua.OpenMath)
	}

	L.SetGlobal("yhat", lua.LNumber(yhat))
	L.SetGlobal("count", lua.LNumber(count))

	timeout := defaultPostHookTimeoutMs
	if post.TimeoutMs > 0 {
		timeout = post.TimeoutMs
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Millisecond)
	defer cancel()
	L.SetContext(ctx)

	fn, err := L.LoadString(code)
	if err != nil {
		return 0, err
	}
	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		if ctx.Err() != nil {
			return 0, errors.New("timeout")
		}
		return 0, err
	}

	ret := L.GetGlobal("yhat")
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("script left non-numeric yhat: %s", ret.Type())
	}
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("script left non-finite yhat")
	}
	return v, nil
}
