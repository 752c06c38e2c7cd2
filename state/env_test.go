package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"lexhtml/common"
	"lexhtml/config"
	"lexhtml/render"
	"lexhtml/style"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Registry != style.Default() {
		t.Error("Environment must start with default registry")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now()}
	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}
	for i := range 3 {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
	}

	// should not panic without logger
	empty := &LocalEnv{}
	empty.RedirectStdLog()
	if empty.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to remain nil")
	}
	empty.RestoreStdLog()
}

func TestLocalEnv_Renderer(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Log = zaptest.NewLogger(t)
	env.Cfg = &config.Config{Version: 1, Render: config.RenderConfig{UnknownNodes: common.UnknownNodesFail}}

	r := env.Renderer()
	if r.Registry() != env.Registry {
		t.Error("renderer must use environment registry")
	}
	if _, err := r.Node([]byte(`{"type":"tab"}`)); !errors.Is(err, render.ErrUnsupportedNode) {
		t.Errorf("configured unknown nodes mode not applied, got %v", err)
	}

	got, err := r.Node([]byte(`{"type":"text","text":"ok","$":{"type":"serif"}}`))
	if err != nil {
		t.Fatalf("Node() error = %v", err)
	}
	if want := `<span style="font-family: var(--serif, serif);">ok</span>`; got != want {
		t.Errorf("Node() = %s, want %s", got, want)
	}
}
