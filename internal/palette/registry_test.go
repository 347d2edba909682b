package palette

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuild_ConcatenatesCatalogThenDynamic(t *testing.T) {
	inv := invocations{}
	catalog := testCatalog(inv)
	dynamic := DeriveDynamic(testEntities(), MaxDynamicItems, nil)

	snap := Build(catalog, dynamic)

	require.Len(t, snap, 10)
	require.Equal(t, "nav:dashboard", snap[0].ID)
	require.Equal(t, dynamic[0].ID, snap[7].ID)
	require.Equal(t, CategoryDynamic, snap[9].Category)
}

func TestDeriveDynamic_TakesFirstFive(t *testing.T) {
	items := DeriveDynamic(manyEntities(12), MaxDynamicItems, nil)

	require.Len(t, items, 5)
	for i, item := range items {
		require.Equal(t, DynamicID(manyEntities(12)[i].ID), item.ID)
	}
}

func TestDeriveDynamic_LimitNeverExceedsFive(t *testing.T) {
	require.Len(t, DeriveDynamic(manyEntities(9), 50, nil), 5)
	require.Len(t, DeriveDynamic(manyEntities(9), 0, nil), 5)
	require.Len(t, DeriveDynamic(manyEntities(9), 2, nil), 2)
	require.Empty(t, DeriveDynamic(nil, 5, nil))
}

func TestDeriveDynamic_StableIDs(t *testing.T) {
	first := DeriveDynamic(testEntities(), 5, nil)
	second := DeriveDynamic(testEntities(), 5, nil)

	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID)
		require.True(t, strings.HasPrefix(first[i].ID, "recent:"))
	}
	require.NotEqual(t, first[0].ID, first[1].ID)
}

func TestDeriveDynamic_FallbackLabelAndDescription(t *testing.T) {
	items := DeriveDynamic([]Entity{
		{ID: "txn-00000042", Merchant: "  Metro ", Amount: "$2.75", Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: ""},
		{ID: "日本語のトランザクションID"},
	}, 5, nil)

	require.Equal(t, "Transaction txn-0000", items[0].Label)
	require.Equal(t, "Metro · $2.75 · Jan 5, 2026", items[0].Description)
	require.Equal(t, []string{"txn-00000042", "Metro"}, items[0].Keywords)

	require.Equal(t, "Untitled transaction", items[1].Label)
	require.Empty(t, items[1].Description)
	require.Empty(t, items[1].Keywords)

	require.Equal(t, "Transaction 日本語のトランザ", items[2].Label)
}

func TestDeriveDynamic_DuplicateEntityIDsStayUnique(t *testing.T) {
	items := DeriveDynamic([]Entity{{ID: "dup"}, {ID: "dup"}}, 5, nil)

	require.NotEqual(t, items[0].ID, items[1].ID)
	require.Equal(t, DynamicID("dup"), items[0].ID)
}

func TestDeriveDynamic_UsesOpener(t *testing.T) {
	var opened []string
	items := DeriveDynamic(testEntities(), 5, func(e Entity) Action {
		return func() { opened = append(opened, e.ID) }
	})

	items[1].invoke()
	require.Equal(t, []string{"txn-002"}, opened)
}

func TestValidateCatalog(t *testing.T) {
	require.NoError(t, ValidateCatalog(testCatalog(invocations{})))

	tests := []struct {
		name    string
		catalog []Item
		errMsg  string
	}{
		{"missing id", []Item{{Label: "x"}}, "id is required"},
		{"missing label", []Item{{ID: "a", Label: "  "}}, "label is required"},
		{"dynamic category", []Item{{ID: "a", Label: "A", Category: CategoryDynamic}}, "reserved"},
		{"recent prefix", []Item{{ID: "recent:x", Label: "A"}}, "prefix is reserved"},
		{"duplicate", []Item{{ID: "a", Label: "A"}, {ID: "a", Label: "B"}}, "duplicate id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.catalog)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}

	require.ErrorIs(t, ValidateCatalog([]Item{{ID: "a", Label: "A"}, {ID: "a", Label: "B"}}), ErrDuplicateID)
}

func TestRegistry_SnapshotReusesSliceForSameRevision(t *testing.T) {
	derivations := 0
	reg := NewRegistry(RegistryConfig{
		Catalog: testCatalog(invocations{}),
		Open: func(e Entity) Action {
			derivations++
			return nil
		},
	})

	list := EntityList{Revision: 3, Entities: testEntities()}
	first := reg.Snapshot(context.Background(), list)
	second := reg.Snapshot(context.Background(), list)

	require.Equal(t, 3, derivations, "one opener call per entity, only on the first snapshot")
	require.Len(t, second, 10)
	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID)
	}

	// A new revision re-derives even though the entities are the same.
	reg.Snapshot(context.Background(), EntityList{Revision: 4, Entities: testEntities()})
	require.Equal(t, 6, derivations)
}

func TestRegistry_MaxDynamic(t *testing.T) {
	reg := NewRegistry(RegistryConfig{MaxDynamic: 2})

	snap := reg.Snapshot(context.Background(), EntityList{Revision: 1, Entities: manyEntities(10)})
	require.Len(t, snap, 2)
}

func TestRegistry_CatalogIsCopied(t *testing.T) {
	catalog := testCatalog(invocations{})
	reg := NewRegistry(RegistryConfig{Catalog: catalog})

	catalog[0].Label = "mutated"
	require.Equal(t, "Go to Dashboard", reg.Catalog()[0].Label)
}
