package palette

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGroup_FirstSeenBucketOrder(t *testing.T) {
	view := []Item{
		{ID: "a", Category: CategoryActions},
		{ID: "r", Category: CategoryDynamic},
		{ID: "b", Category: CategoryActions},
		{ID: "n", Category: CategoryNavigation},
	}

	g := Group(view)

	buckets := g.Buckets()
	require.Len(t, buckets, 3)
	require.Equal(t, CategoryActions, buckets[0].Category)
	require.Equal(t, CategoryDynamic, buckets[1].Category)
	require.Equal(t, CategoryNavigation, buckets[2].Category)

	require.Equal(t, []Entry{{Item: view[0], Index: 0}, {Item: view[2], Index: 2}}, buckets[0].Entries)
	require.Equal(t, 1, buckets[1].Entries[0].Index)
	require.Equal(t, 3, buckets[2].Entries[0].Index)
}

func TestGroup_IndexLookups(t *testing.T) {
	g := Group(Filter(testSnapshot(), ""))

	require.Equal(t, 10, g.Len())
	idx, ok := g.IndexOf("action:join")
	require.True(t, ok)
	require.Equal(t, 6, idx)

	item, ok := g.At(idx)
	require.True(t, ok)
	require.Equal(t, "action:join", item.ID)

	_, ok = g.IndexOf("missing")
	require.False(t, ok)
	_, ok = g.At(-1)
	require.False(t, ok)
	_, ok = g.At(10)
	require.False(t, ok)
}

func TestGroup_Empty(t *testing.T) {
	g := Group(nil)
	require.True(t, g.Empty())
	require.Empty(t, g.Buckets())
	_, ok := g.At(0)
	require.False(t, ok)
}

func TestProperty_GroupAssignsEachIndexOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cats := rapid.SliceOfN(rapid.SampledFrom([]Category{CategoryNavigation, CategoryActions, CategoryDynamic}), 0, 30).Draw(rt, "categories")
		view := make([]Item, len(cats))
		for i, c := range cats {
			view[i] = Item{ID: string(rune('A' + i)), Category: c}
		}

		g := Group(view)

		seen := make([]bool, len(view))
		for _, b := range g.Buckets() {
			last := -1
			for _, e := range b.Entries {
				require.False(t, seen[e.Index], "index %d assigned twice", e.Index)
				seen[e.Index] = true
				require.Greater(t, e.Index, last, "indices increase within a bucket")
				last = e.Index
				require.Equal(t, view[e.Index].ID, e.Item.ID, "index is the flat position")
				require.Equal(t, b.Category, e.Item.Category)
			}
		}
		for i, ok := range seen {
			require.True(t, ok, "index %d never assigned", i)
		}
	})
}
