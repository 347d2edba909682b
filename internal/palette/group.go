package palette

// Entry is an item placed in a bucket together with its global index.
type Entry struct {
	Item  Item
	Index int
}

// Bucket holds the entries of one category in filtered-view order.
type Bucket struct {
	Category Category
	Entries  []Entry
}

// Grouped is the filtered view partitioned into category buckets. Buckets
// appear in the order their category is first seen; indices stay flat across
// bucket boundaries.
type Grouped struct {
	buckets []Bucket
	flat    []Item
	index   map[string]int
}

// Group partitions view in a single pass. It must be re-run whenever the
// filtered view changes; indices are never patched.
func Group(view []Item) Grouped {
	g := Grouped{
		flat:  view,
		index: make(map[string]int, len(view)),
	}

	bucketOf := make(map[Category]int, 3)
	for pos, item := range view {
		b, ok := bucketOf[item.Category]
		if !ok {
			b = len(g.buckets)
			bucketOf[item.Category] = b
			g.buckets = append(g.buckets, Bucket{Category: item.Category})
		}
		g.buckets[b].Entries = append(g.buckets[b].Entries, Entry{Item: item, Index: pos})
		if _, dup := g.index[item.ID]; !dup {
			g.index[item.ID] = pos
		}
	}
	return g
}

// Buckets returns the ordered buckets.
func (g Grouped) Buckets() []Bucket {
	return g.buckets
}

// Items returns the flat filtered view.
func (g Grouped) Items() []Item {
	return g.flat
}

// Len returns the number of items in the filtered view.
func (g Grouped) Len() int {
	return len(g.flat)
}

// Empty reports whether nothing matched.
func (g Grouped) Empty() bool {
	return len(g.flat) == 0
}

// At returns the item at global index i.
func (g Grouped) At(i int) (Item, bool) {
	if i < 0 || i >= len(g.flat) {
		return Item{}, false
	}
	return g.flat[i], true
}

// IndexOf returns the global index of the item with the given ID.
func (g Grouped) IndexOf(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}
