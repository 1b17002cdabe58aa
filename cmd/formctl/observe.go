package main

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/formstate"
	"github.com/zoobzio/formstate/schema"
)

var (
	hookOnce sync.Once
	current  atomic.Pointer[slog.Logger]
)

// observe routes formstate and schema signals to logger until the returned
// stop function is called. The signal name becomes the message and known
// keys become attributes. Hooks live for the process and are registered on
// the first call only.
func observe(logger *slog.Logger) (stop func()) {
	current.Store(logger)
	hookOnce.Do(registerHooks)
	return func() { current.CompareAndSwap(logger, nil) }
}

func registerHooks() {
	hook := func(name string) func(context.Context, *capitan.Event) {
		return func(ctx context.Context, e *capitan.Event) {
			if logger := current.Load(); logger != nil {
				logger.LogAttrs(ctx, slog.LevelInfo, name, attrs(e)...)
			}
		}
	}

	capitan.Hook(formstate.FormMounted, hook(formstate.FormMounted.Name()))
	capitan.Hook(formstate.FormReset, hook(formstate.FormReset.Name()))
	capitan.Hook(formstate.FormSubmitted, hook(formstate.FormSubmitted.Name()))
	capitan.Hook(formstate.FieldFocused, hook(formstate.FieldFocused.Name()))
	capitan.Hook(formstate.FieldBlurred, hook(formstate.FieldBlurred.Name()))
	capitan.Hook(formstate.FieldChanged, hook(formstate.FieldChanged.Name()))
	capitan.Hook(formstate.FormValidated, hook(formstate.FormValidated.Name()))
	capitan.Hook(formstate.ServerErrorsSet, hook(formstate.ServerErrorsSet.Name()))
	capitan.Hook(formstate.ValidityChanged, hook(formstate.ValidityChanged.Name()))
	capitan.Hook(schema.FormLoaded, hook(schema.FormLoaded.Name()))
	capitan.Hook(schema.DocumentRejected, hook(schema.DocumentRejected.Name()))
}

func attrs(e *capitan.Event) []slog.Attr {
	var out []slog.Attr
	if v, ok := formstate.KeyFormID.From(e); ok {
		out = append(out, slog.String("form_id", v))
	}
	if v, ok := formstate.KeyForm.From(e); ok {
		out = append(out, slog.String("form", v))
	}
	if v, ok := formstate.KeyField.From(e); ok {
		out = append(out, slog.String("field", v))
	}
	if v, ok := formstate.KeyValidity.From(e); ok {
		out = append(out, slog.String("validity", v))
	}
	if v, ok := formstate.KeyClientErrors.From(e); ok {
		out = append(out, slog.Int("client_errors", v))
	}
	if v, ok := formstate.KeyServerErrors.From(e); ok {
		out = append(out, slog.Int("server_errors", v))
	}
	if v, ok := schema.KeyStage.From(e); ok {
		out = append(out, slog.String("stage", v))
	}
	if v, ok := schema.KeyError.From(e); ok {
		out = append(out, slog.String("error", v))
	}
	return out
}
