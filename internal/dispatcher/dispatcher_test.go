package dispatcher_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Krazal/WebEdit/internal/dispatcher"
	"github.com/Krazal/WebEdit/internal/dispatcher/execctx"
	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
	"github.com/Krazal/WebEdit/internal/engine"
)

func TestDispatchRegisteredHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	doc := engine.New(engine.WithContent("x"))
	var got *execctx.ExecutionContext
	d.RegisterHandlerFunc("config.load", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		got = ctx
		return handler.Success()
	})

	result := d.Dispatch(handler.NewAction("config.load"), doc)
	if !result.IsOK() {
		t.Fatalf("expected OK, got %v: %v", result.Status, result.Error)
	}
	if got == nil {
		t.Fatal("handler was not called")
	}
	if got.Buffer != doc {
		t.Error("expected the dispatched buffer in the execution context")
	}
	if got.ID == "" {
		t.Error("expected a correlation id")
	}
}

func TestDispatchUniqueIDs(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	var ids []string
	d.RegisterHandlerFunc("config.load", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		ids = append(ids, ctx.ID)
		return handler.Success()
	})
	d.Dispatch(handler.NewAction("config.load"), nil)
	d.Dispatch(handler.NewAction("config.load"), nil)

	if len(ids) != 2 || ids[0] == ids[1] {
		t.Errorf("expected two distinct ids, got %v", ids)
	}
}

func TestDispatchNamespaceBeforeRegistry(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	bnh := handler.NewBaseNamespaceHandler("tags")
	bnh.Register("tags.replace", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("namespace")
	})
	d.RegisterNamespace(bnh)
	d.RegisterHandlerFunc("tags.replace", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("registry")
	})

	result := d.Dispatch(handler.NewAction("tags.replace"), nil)
	if result.Message != "namespace" {
		t.Errorf("expected namespace handler, got %q", result.Message)
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(handler.NewAction("tags.missing"), nil)
	if !result.IsError() {
		t.Fatalf("expected error, got %v", result.Status)
	}
	if !errors.Is(result.Error, dispatcher.ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Error)
	}
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("tags.replace", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	result := d.Dispatch(handler.NewAction("tags.replace"), nil)
	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", result.Error)
	}

	snap := d.Metrics().Snapshot()
	if snap.TotalPanics != 1 {
		t.Errorf("expected 1 panic, got %d", snap.TotalPanics)
	}
}

func TestDispatchWithoutRecovery(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithPanicRecovery(false))
	d.RegisterHandlerFunc("tags.replace", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	defer func() {
		if recover() == nil {
			t.Error("expected panic to propagate")
		}
	}()
	d.Dispatch(handler.NewAction("tags.replace"), nil)
}

func TestDispatchMetrics(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("config.load", okFunc)
	d.RegisterHandlerFunc("config.edit", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Errorf("denied")
	})

	d.Dispatch(handler.NewAction("config.load"), nil)
	d.Dispatch(handler.NewAction("config.load"), nil)
	d.Dispatch(handler.NewAction("config.edit"), nil)

	snap := d.Metrics().Snapshot()
	if snap.TotalDispatches != 3 {
		t.Errorf("expected 3 dispatches, got %d", snap.TotalDispatches)
	}
	if snap.TotalErrors != 1 {
		t.Errorf("expected 1 error, got %d", snap.TotalErrors)
	}
	if snap.ActionCount != 2 {
		t.Errorf("expected 2 commands, got %d", snap.ActionCount)
	}

	stats := d.Metrics().ActionStats("config.load")
	if stats == nil || stats.DispatchCount != 2 {
		t.Errorf("expected 2 config.load dispatches, got %+v", stats)
	}
	if d.Metrics().ActionStats("missing") != nil {
		t.Error("expected nil stats for an undispatched command")
	}
}

func TestDispatchMetricsDisabled(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	if d.Metrics() != nil {
		t.Error("expected nil metrics by default")
	}
}

func TestDispatchLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	d := dispatcher.NewWithDefaults()
	d.SetLogger(zap.New(core))
	d.RegisterHandlerFunc("config.edit", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Errorf("denied")
	})

	d.Dispatch(handler.NewAction("config.edit"), nil)

	entries := logs.FilterMessage("command failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 failure entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["command"] != "config.edit" {
		t.Errorf("expected command field, got %v", fields["command"])
	}
	if id, _ := fields["dispatch_id"].(string); id == "" {
		t.Error("expected dispatch_id field")
	}
}

func TestDispatchLogsSlowCommands(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := dispatcher.New(dispatcher.DefaultConfig().WithSlowCommand(time.Nanosecond))
	d.SetLogger(zap.New(core))
	d.RegisterHandlerFunc("tags.replace", func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
		time.Sleep(time.Millisecond)
		return handler.Success()
	})

	d.Dispatch(handler.NewAction("tags.replace"), nil)

	if n := logs.FilterMessage("slow command").Len(); n != 1 {
		t.Errorf("expected 1 slow command entry, got %d", n)
	}
}

func TestDispatchCountsOutcomes(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	results := map[string]handler.Result{
		"tags.replace":              handler.NoOpWithMessage("Empty line"),
		"tags.recommend":            handler.Pending(),
		"tags.suggestion.cancelled": handler.Cancelled(),
		"tags.suggestion.completed": handler.Success(),
	}
	for name, res := range results {
		res := res
		d.RegisterHandlerFunc(name, func(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
			return res
		})
		d.Dispatch(handler.NewAction(name), nil)
	}

	snap := d.Metrics().Snapshot()
	if snap.Rejections != 1 || snap.Suggestions != 1 || snap.Cancellations != 1 {
		t.Errorf("unexpected outcome counts: %+v", snap)
	}
	if snap.TotalErrors != 0 {
		t.Errorf("expected no errors, got %d", snap.TotalErrors)
	}
	if stats := d.Metrics().ActionStats("tags.recommend"); stats == nil || stats.LastStatus != handler.StatusPending {
		t.Errorf("expected pending last status, got %+v", stats)
	}
}
