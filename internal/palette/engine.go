package palette

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/quickactions/internal/log"
	"github.com/zjrosen/quickactions/internal/pubsub"
	"github.com/zjrosen/quickactions/internal/tracing"
)

// Key is a discrete key event the engine understands.
type Key int

const (
	KeyArrowDown Key = iota
	KeyArrowUp
	KeyEnter
	KeyEscape
)

// Event is the payload published on the engine's event stream.
type Event struct {
	ItemID   string
	Label    string
	Category Category
	Index    int
	Source   Source
	Query    string
}

// Config configures an Engine.
type Config struct {
	Registry   *Registry
	Clock      Clock
	LockWindow time.Duration
	Tracer     trace.Tracer
	Events     pubsub.Publisher[Event]
}

// Outcome reports what a single input event did.
type Outcome struct {
	Moved    bool          // active index changed
	Scroll   ScrollRequest // valid when Scrolled
	Scrolled bool
	Executed bool
	Item     Item // the executed item, when Executed
	Closed   bool
}

// Engine owns one palette session at a time. Everything it derives is rebuilt
// on Open and dropped on Close.
type Engine struct {
	registry   *Registry
	tracer     trace.Tracer
	events     pubsub.Publisher[Event]
	dispatcher Dispatcher
	arbiter    *Arbiter
	viewport   ViewportSync

	open     bool
	snapshot Snapshot
	query    string
	view     Grouped
}

// New creates a closed engine.
func New(cfg Config) *Engine {
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry(RegistryConfig{})
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("palette")
	}
	return &Engine{
		registry:   registry,
		tracer:     tracer,
		events:     cfg.Events,
		dispatcher: NewDispatcher(tracer),
		arbiter:    NewArbiter(cfg.Clock, cfg.LockWindow),
	}
}

// Open starts a fresh session over the catalog and list. Opening an open
// palette starts over.
func (e *Engine) Open(ctx context.Context, list EntityList) {
	_, span := e.tracer.Start(ctx, tracing.SpanPaletteOpen)
	defer span.End()

	e.viewport.Cancel()
	e.snapshot = e.registry.Snapshot(ctx, list)
	e.query = ""
	e.rebuild()
	e.open = true

	span.SetAttributes(
		attribute.Int64(tracing.AttrRevision, int64(list.Revision)), //nolint:gosec // revisions stay far below MaxInt64
		attribute.Int(tracing.AttrSnapshotSize, len(e.snapshot)),
	)
	log.Debug(log.CatPalette, "opened", "items", len(e.snapshot), "revision", list.Revision)
	e.publish(pubsub.OpenedEvent, Event{Index: -1})
}

// Close discards the session and cancels pending scroll requests.
func (e *Engine) Close() {
	if !e.open {
		return
	}
	query := e.query
	e.open = false
	e.snapshot = nil
	e.query = ""
	e.view = Group(nil)
	e.arbiter.Reset()
	e.viewport.Cancel()

	log.Debug(log.CatPalette, "closed")
	e.publish(pubsub.ClosedEvent, Event{Index: -1, Query: query})
}

// IsOpen reports whether a session is running.
func (e *Engine) IsOpen() bool { return e.open }

// SetQuery replaces the query. A changed query rebuilds the views and resets
// the selection, even when the old active index would still be in range.
func (e *Engine) SetQuery(query string) {
	if !e.open || query == e.query {
		return
	}
	e.query = query
	e.rebuild()
}

// Query returns the current query.
func (e *Engine) Query() string { return e.query }

func (e *Engine) rebuild() {
	e.view = Group(Filter(e.snapshot, e.query))
	e.arbiter.Reset()
	e.viewport.Cancel()
}

// View returns the grouped filtered view.
func (e *Engine) View() Grouped { return e.view }

// Snapshot returns the candidate set of the current session.
func (e *Engine) Snapshot() Snapshot { return e.snapshot }

// Selection returns the arbiter state.
func (e *Engine) Selection() Selection { return e.arbiter.State() }

// IsActive reports whether global index i is drawn as selected.
func (e *Engine) IsActive(i int) bool {
	return e.open && !e.view.Empty() && e.arbiter.IsActive(i)
}

// IsHoverOnly reports whether global index i is drawn with hover styling only.
func (e *Engine) IsHoverOnly(i int) bool {
	return e.open && e.arbiter.IsHoverOnly(i)
}

// LockRemaining returns how long the keyboard keeps priority over the pointer.
func (e *Engine) LockRemaining() time.Duration { return e.arbiter.LockRemaining() }

// Active returns the active item.
func (e *Engine) Active() (Item, bool) {
	if !e.open {
		return Item{}, false
	}
	return e.view.At(e.arbiter.Active())
}

// HandleKey applies a key press.
func (e *Engine) HandleKey(ctx context.Context, k Key) Outcome {
	if !e.open {
		return Outcome{}
	}
	switch k {
	case KeyArrowDown:
		return e.move(1)
	case KeyArrowUp:
		return e.move(-1)
	case KeyEnter:
		return e.Confirm(ctx, SourceEnter, e.arbiter.Active())
	case KeyEscape:
		e.Close()
		return Outcome{Closed: true}
	}
	return Outcome{}
}

func (e *Engine) move(delta int) Outcome {
	if e.view.Empty() {
		return Outcome{}
	}
	moved := e.arbiter.Move(delta, e.view.Len())
	out := Outcome{Moved: moved}
	if moved {
		out.Scroll = e.viewport.Request(e.arbiter.Active())
		out.Scrolled = true
	}
	return out
}

// PointerEnter handles the pointer entering item i. It reports whether the
// pointer took the highlight.
func (e *Engine) PointerEnter(i int) bool {
	if !e.open {
		return false
	}
	return e.arbiter.PointerEnter(i, e.view.Len())
}

// PointerLeave handles the pointer leaving item i.
func (e *Engine) PointerLeave(i int) {
	if e.open {
		e.arbiter.PointerLeave(i)
	}
}

// Click confirms item i.
func (e *Engine) Click(ctx context.Context, i int) Outcome {
	return e.Confirm(ctx, SourceClick, i)
}

// Confirm invokes the action of the item chosen by source and closes the
// palette. With nothing to act on it does nothing and the palette stays open.
func (e *Engine) Confirm(ctx context.Context, source Source, index int) Outcome {
	if !e.open {
		return Outcome{}
	}
	item, index, ok := e.dispatcher.Resolve(source, index, e.arbiter.Active(), e.view)
	if !ok {
		return Outcome{}
	}

	query := e.query
	log.Info(log.CatPalette, "confirmed", "id", item.ID, "index", index, "source", source)
	e.dispatcher.Invoke(ctx, source, index, item)
	e.publish(pubsub.ExecutedEvent, Event{
		ItemID:   item.ID,
		Label:    item.Label,
		Category: item.Category,
		Index:    index,
		Source:   source,
		Query:    query,
	})
	e.Close()

	return Outcome{Executed: true, Item: item, Closed: true}
}

// PendingScroll returns the latest unapplied scroll request.
func (e *Engine) PendingScroll() (ScrollRequest, bool) { return e.viewport.Pending() }

// CompleteScroll acknowledges request seq; stale requests report false.
func (e *Engine) CompleteScroll(seq uint64) bool { return e.viewport.Complete(seq) }

func (e *Engine) publish(t pubsub.EventType, ev Event) {
	if e.events != nil {
		e.events.Publish(t, ev)
	}
}
