package tracing

// Span names.
const (
	SpanPaletteOpen    = "palette.open"
	SpanPaletteConfirm = "palette.confirm"
	SpanStoreRecent    = "store.recent"
	SpanStoreAdd       = "store.add"
	SpanStoreGet       = "store.get"
	SpanStoreCount     = "store.count"
)

// Span attribute keys.
const (
	AttrRevision     = "palette.revision"
	AttrSnapshotSize = "palette.snapshot.size"
	AttrItemID       = "palette.item.id"
	AttrItemCategory = "palette.item.category"
	AttrSource       = "palette.source"
	AttrIndex        = "palette.index"

	AttrLimit = "store.limit"
	AttrRows  = "store.rows"
	AttrTxID  = "store.transaction.id"
	AttrFound = "store.found"
)
