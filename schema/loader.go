package schema

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/formstate"
)

// DefaultDebounce is the default debounce duration for document changes.
const DefaultDebounce = 100 * time.Millisecond

// ErrNoForm is returned by Loader.Mount before any document was accepted.
var ErrNoForm = errors.New("no schema loaded")

// loaded is the accepted document together with the form built from it.
type loaded struct {
	doc  Document
	form *formstate.Form
}

// Loader watches a schema source, decodes and builds each document and keeps
// the last form that built successfully.
//
// Forms already mounted keep the field set they were created with; a reload
// only affects FormStates mounted afterwards.
type Loader struct {
	watcher        Watcher
	debounce       time.Duration
	startupTimeout time.Duration
	syncMode       bool
	clock          clockz.Clock
	codec          formstate.Codec
	onLoad         func(*formstate.Form)
	onStop         func(State)

	state      atomic.Int32
	current    atomic.Pointer[loaded]
	lastError  atomic.Pointer[error]
	rejections *rejectionLog

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// NewLoader creates a Loader reading documents from watcher. Documents are
// decoded as YAML unless another codec is configured.
func NewLoader(watcher Watcher) *Loader {
	l := &Loader{
		watcher:  watcher,
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    formstate.YAMLCodec{},
	}
	l.state.Store(int32(StateLoading))
	return l
}

// Debounce sets how long to wait for further changes before processing.
// Default: 100ms. Must be called before Start().
func (l *Loader) Debounce(d time.Duration) *Loader {
	l.debounce = d
	return l
}

// SyncMode enables synchronous processing for testing. Changes are only
// processed by explicit Process calls. Must be called before Start().
func (l *Loader) SyncMode() *Loader {
	l.syncMode = true
	return l
}

// Clock sets a custom clock for debouncing and rejection timestamps.
// Must be called before Start().
func (l *Loader) Clock(clock clockz.Clock) *Loader {
	l.clock = clock
	return l
}

// Codec sets the codec for decoding documents. Must be called before Start().
func (l *Loader) Codec(codec formstate.Codec) *Loader {
	l.codec = codec
	return l
}

// StartupTimeout bounds the wait for the first document.
// Default: wait indefinitely. Must be called before Start().
func (l *Loader) StartupTimeout(d time.Duration) *Loader {
	l.startupTimeout = d
	return l
}

// OnLoad sets a callback invoked with every newly accepted form.
// Must be called before Start().
func (l *Loader) OnLoad(fn func(*formstate.Form)) *Loader {
	l.onLoad = fn
	return l
}

// OnStop sets a callback invoked with the final state when watching ends.
// Must be called before Start().
func (l *Loader) OnStop(fn func(State)) *Loader {
	l.onStop = fn
	return l
}

// RejectionHistory sets how many recent rejections to retain.
// Use 0 (default) to only retain the most recent error via LastError().
// Must be called before Start().
func (l *Loader) RejectionHistory(n int) *Loader {
	l.rejections = newRejectionLog(n)
	return l
}

// State returns the current state of the Loader.
func (l *Loader) State() State {
	return State(l.state.Load())
}

// Current returns the last accepted form and true, or nil and false when no
// document has been accepted.
func (l *Loader) Current() (*formstate.Form, bool) {
	ptr := l.current.Load()
	if ptr == nil {
		return nil, false
	}
	return ptr.form, true
}

// Document returns the last accepted document.
func (l *Loader) Document() (Document, bool) {
	ptr := l.current.Load()
	if ptr == nil {
		return Document{}, false
	}
	return ptr.doc, true
}

// LastError returns the last rejection reason, or nil after a success.
func (l *Loader) LastError() error {
	ptr := l.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Rejections returns the recent rejections, oldest first, since the last
// accepted document. Returns nil when history is disabled.
func (l *Loader) Rejections() []Rejection {
	return l.rejections.list()
}

// Mount creates a FormState against the current form.
func (l *Loader) Mount(ctx context.Context, values formstate.Values, serverErrors formstate.Errors, opts ...formstate.Option) (*formstate.FormState, error) {
	form, ok := l.Current()
	if !ok {
		return nil, ErrNoForm
	}
	return formstate.NewContext(ctx, form, values, serverErrors, opts...)
}

// Start begins watching. It blocks until the first document is processed
// (accepted or rejected), then keeps watching asynchronously.
//
// If the first document is rejected, Start returns the error but keeps
// watching in the background for a valid one. In sync mode, only the first
// document is processed; use Process for the rest.
//
// Start can only be called once.
func (l *Loader) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return fmt.Errorf("loader already started")
	}
	l.started = true
	l.mu.Unlock()

	capitan.Emit(ctx, LoaderStarted,
		KeyDebounce.Field(l.debounce),
	)

	changes, err := l.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	startupCtx := ctx
	if l.startupTimeout > 0 {
		var cancel context.CancelFunc
		startupCtx, cancel = l.clock.WithTimeout(ctx, l.startupTimeout)
		defer cancel()
	}

	var initialErr error
	select {
	case <-startupCtx.Done():
		if l.startupTimeout > 0 && errors.Is(startupCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("startup timeout: no schema within %v", l.startupTimeout)
		}
		return startupCtx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting a schema")
		}
		capitan.Emit(ctx, DocumentReceived)
		initialErr = l.process(ctx, raw)
	}

	if l.syncMode {
		l.changes = changes
		return initialErr
	}

	go l.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next pending document. It is only
// available in sync mode and returns false when nothing is pending.
func (l *Loader) Process(ctx context.Context) bool {
	if !l.syncMode {
		return false
	}

	select {
	case raw, ok := <-l.changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, DocumentReceived)
		_ = l.process(ctx, raw) //nolint:errcheck // Errors stored via reject
		return true
	default:
		return false
	}
}

// process decodes and builds a single document.
func (l *Loader) process(ctx context.Context, raw []byte) error {
	oldState := l.State()

	doc, err := Decode(l.codec, raw)
	if err != nil {
		l.reject(ctx, oldState, "decode", err)
		return err
	}

	form, err := doc.Build()
	if err != nil {
		l.reject(ctx, oldState, "build", err)
		return fmt.Errorf("build failed: %w", err)
	}

	l.current.Store(&loaded{doc: doc, form: form})
	l.lastError.Store(nil)
	l.rejections.reset()
	l.transitionState(ctx, oldState, StateHealthy)
	capitan.Emit(ctx, FormLoaded,
		KeyForm.Field(form.Name),
		KeyFields.Field(len(form.Fields)),
	)
	if l.onLoad != nil {
		l.onLoad(form)
	}

	return nil
}

func (l *Loader) reject(ctx context.Context, oldState State, stage string, err error) {
	e := err
	l.lastError.Store(&e)
	l.rejections.add(Rejection{Stage: stage, Err: err, At: l.clock.Now()})
	l.transitionState(ctx, oldState, l.failureState())
	capitan.Emit(ctx, DocumentRejected,
		KeyStage.Field(stage),
		KeyError.Field(err.Error()),
	)
}

// failureState is Degraded once a form has been accepted, Empty before.
func (l *Loader) failureState() State {
	if l.current.Load() == nil {
		return StateEmpty
	}
	return StateDegraded
}

// transitionState updates the state and emits a state change event if changed.
func (l *Loader) transitionState(ctx context.Context, oldState, newState State) {
	if oldState == newState {
		return
	}
	l.state.Store(int32(newState))
	capitan.Emit(ctx, LoaderStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}

// watch processes documents from the watcher channel with debouncing.
func (l *Loader) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		final := l.State()
		capitan.Emit(ctx, LoaderStopped,
			KeyState.Field(final.String()),
		)
		if l.onStop != nil {
			l.onStop(final)
		}
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				if hasPending {
					_ = l.process(ctx, pending) //nolint:errcheck // Errors stored via reject
				}
				return
			}

			capitan.Emit(ctx, DocumentReceived)
			pending = raw
			hasPending = true

			if timer == nil {
				timer = l.clock.NewTimer(l.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(l.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = l.process(ctx, pending) //nolint:errcheck // Errors stored via reject
				pending, hasPending = nil, false
			}
		}
	}
}
