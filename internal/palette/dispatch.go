package palette

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/quickactions/internal/tracing"
)

// Source identifies how a selection was confirmed.
type Source int

const (
	SourceEnter Source = iota
	SourceClick
)

func (s Source) String() string {
	if s == SourceClick {
		return "click"
	}
	return "enter"
}

// Dispatcher turns a confirmed selection into exactly one action invocation.
type Dispatcher struct {
	tracer trace.Tracer
}

// NewDispatcher creates a dispatcher that records a span per invocation.
// A nil tracer disables tracing.
func NewDispatcher(tracer trace.Tracer) Dispatcher {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("palette")
	}
	return Dispatcher{tracer: tracer}
}

// Resolve picks the item a confirmation acts on. Enter uses the active index;
// a click uses the clicked index whatever is active. It reports false when
// the index does not address an item of view.
func (d Dispatcher) Resolve(source Source, index, active int, view Grouped) (Item, int, bool) {
	if source == SourceEnter {
		index = active
	}
	item, ok := view.At(index)
	return item, index, ok
}

// Invoke runs item's action inside a span.
func (d Dispatcher) Invoke(ctx context.Context, source Source, index int, item Item) {
	_, span := d.tracer.Start(ctx, tracing.SpanPaletteConfirm,
		trace.WithAttributes(
			attribute.String(tracing.AttrItemID, item.ID),
			attribute.String(tracing.AttrItemCategory, item.Category.String()),
			attribute.String(tracing.AttrSource, source.String()),
			attribute.Int(tracing.AttrIndex, index),
		))
	defer span.End()

	item.invoke()
}
