// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lexhtml/config"
	"lexhtml/render"
	"lexhtml/style"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Registry is shared by all renderers and never modified.
	Registry *style.Registry

	// used by render subcommand
	Overwrite bool

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Renderer returns node renderer configured according to environment.
func (e *LocalEnv) Renderer() *render.Renderer {
	var opts []render.Option
	if e.Cfg != nil {
		opts = append(opts, render.WithUnknownNodes(e.Cfg.Render.UnknownNodes))
	}
	return render.New(e.Registry, e.Log, opts...)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
