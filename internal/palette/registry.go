package palette

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/quickactions/internal/cachemanager"
	"github.com/zjrosen/quickactions/internal/log"
)

// MaxDynamicItems caps the dynamic slice of every snapshot.
const MaxDynamicItems = 5

const fallbackIDClusters = 8

// dynamicNamespace scopes the name-based UUIDs of dynamic items.
var dynamicNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("quickactions:recent"))

// Entity is an externally owned recent record, such as a transaction.
// Every field except ID is optional.
type Entity struct {
	ID       string
	Title    string
	Merchant string
	Amount   string
	Date     time.Time
}

// EntityList is a revisioned list of recent entities. The owner bumps Revision
// whenever Entities changes; the registry re-derives its dynamic slice only
// then.
type EntityList struct {
	Revision uint64
	Entities []Entity
}

// Opener returns the action that opens e.
type Opener func(e Entity) Action

// Snapshot is the ordered candidate set of one palette session.
type Snapshot []Item

// Build concatenates the catalog and the dynamic slice into a new snapshot.
func Build(catalog, dynamic []Item) Snapshot {
	s := make(Snapshot, 0, len(catalog)+len(dynamic))
	s = append(s, catalog...)
	return append(s, dynamic...)
}

// DynamicID derives the item ID of the entity with the given identifier.
func DynamicID(entityID string) string {
	return "recent:" + uuid.NewSHA1(dynamicNamespace, []byte(entityID)).String()
}

// DeriveDynamic maps the first limit entities (at most MaxDynamicItems) to
// items. Mapping is deterministic: the same entities always yield the same IDs.
func DeriveDynamic(entities []Entity, limit int, open Opener) []Item {
	if limit <= 0 || limit > MaxDynamicItems {
		limit = MaxDynamicItems
	}
	n := min(len(entities), limit)

	items := make([]Item, 0, n)
	seen := make(map[string]struct{}, n)
	for i, e := range entities[:n] {
		item := dynamicItem(e, open)
		if _, dup := seen[item.ID]; dup {
			item.ID += "-" + strconv.Itoa(i)
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	return items
}

func dynamicItem(e Entity, open Opener) Item {
	label := strings.TrimSpace(e.Title)
	if label == "" {
		label = fallbackLabel(e.ID)
	}

	var action Action
	if open != nil {
		action = open(e)
	}

	keywords := make([]string, 0, 2)
	for _, k := range []string{e.ID, e.Merchant} {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}

	return Item{
		ID:          DynamicID(e.ID),
		Label:       label,
		Description: describe(e),
		Category:    CategoryDynamic,
		Keywords:    keywords,
		Action:      action,
	}
}

func fallbackLabel(id string) string {
	short := shortID(strings.TrimSpace(id))
	if short == "" {
		return "Untitled transaction"
	}
	return "Transaction " + short
}

// shortID keeps the first few grapheme clusters of id.
func shortID(id string) string {
	var b strings.Builder
	g := uniseg.NewGraphemes(id)
	for n := 0; n < fallbackIDClusters && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return b.String()
}

func describe(e Entity) string {
	parts := make([]string, 0, 3)
	if m := strings.TrimSpace(e.Merchant); m != "" {
		parts = append(parts, m)
	}
	if a := strings.TrimSpace(e.Amount); a != "" {
		parts = append(parts, a)
	}
	if !e.Date.IsZero() {
		parts = append(parts, e.Date.Format("Jan 2, 2006"))
	}
	return strings.Join(parts, " · ")
}

// ValidateCatalog reports catalog items that would break snapshot invariants.
func ValidateCatalog(catalog []Item) error {
	seen := make(map[string]struct{}, len(catalog))
	for i, item := range catalog {
		if item.ID == "" {
			return fmt.Errorf("catalog item %d: id is required", i)
		}
		if strings.TrimSpace(item.Label) == "" {
			return fmt.Errorf("catalog item %q: label is required", item.ID)
		}
		if item.Category == CategoryDynamic {
			return fmt.Errorf("catalog item %q: dynamic category is reserved for recent entities", item.ID)
		}
		if strings.HasPrefix(item.ID, "recent:") {
			return fmt.Errorf("catalog item %q: the recent: id prefix is reserved", item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("catalog item %q: %w", item.ID, ErrDuplicateID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// ErrDuplicateID is returned by ValidateCatalog for repeated item IDs.
var ErrDuplicateID = errors.New("duplicate id")

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	Catalog    []Item
	Open       Opener
	MaxDynamic int // defaults to MaxDynamicItems
	CacheTTL   time.Duration

	// Cache holds derived dynamic slices keyed by list revision.
	// Nil uses a private in-memory cache.
	Cache cachemanager.CacheManager[string, []Item]
}

// Registry assembles snapshots from the static catalog and a recent list.
type Registry struct {
	catalog    []Item
	open       Opener
	maxDynamic int
	ttl        time.Duration
	slices     *cachemanager.ReadThroughCache[string, []Item, []Entity]
}

// NewRegistry creates a registry. The catalog is copied.
func NewRegistry(cfg RegistryConfig) *Registry {
	maxDynamic := cfg.MaxDynamic
	if maxDynamic <= 0 || maxDynamic > MaxDynamicItems {
		maxDynamic = MaxDynamicItems
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	cache := cfg.Cache
	if cache == nil {
		cache = cachemanager.NewInMemoryCacheManager[string, []Item]("dynamic-slice", ttl, cachemanager.DefaultCleanupInterval)
	}

	r := &Registry{
		catalog:    append([]Item(nil), cfg.Catalog...),
		open:       cfg.Open,
		maxDynamic: maxDynamic,
		ttl:        ttl,
	}
	r.slices = cachemanager.NewReadThroughCache[string, []Item, []Entity](cache, r.derive)
	return r
}

// Catalog returns a copy of the static catalog.
func (r *Registry) Catalog() []Item {
	return append([]Item(nil), r.catalog...)
}

// Snapshot returns the catalog followed by the dynamic slice for list.
// Repeated calls with the same revision reuse the derived slice.
func (r *Registry) Snapshot(ctx context.Context, list EntityList) Snapshot {
	dynamic, err := r.slices.Get(ctx, revisionKey(list.Revision), list.Entities, r.ttl)
	if err != nil {
		// derive never fails; keep the catalog usable regardless.
		log.ErrorErr(log.CatRegistry, "deriving dynamic slice", err, "revision", list.Revision)
		dynamic = nil
	}
	return Build(r.catalog, dynamic)
}

func (r *Registry) derive(_ context.Context, entities []Entity) ([]Item, error) {
	items := DeriveDynamic(entities, r.maxDynamic, r.open)
	log.Debug(log.CatRegistry, "derived dynamic slice", "entities", len(entities), "items", len(items))
	return items, nil
}

func revisionKey(rev uint64) string {
	return "rev:" + strconv.FormatUint(rev, 10)
}
