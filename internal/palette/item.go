package palette

// Category is the closed set of item kinds, used for grouping.
type Category int

const (
	CategoryNavigation Category = iota
	CategoryActions
	CategoryDynamic
)

// String returns the stable identifier of the category.
func (c Category) String() string {
	switch c {
	case CategoryNavigation:
		return "navigation"
	case CategoryActions:
		return "actions"
	case CategoryDynamic:
		return "dynamic-entity"
	default:
		return "unknown"
	}
}

// Title returns the header shown above the category's bucket.
func (c Category) Title() string {
	switch c {
	case CategoryNavigation:
		return "Navigation"
	case CategoryActions:
		return "Actions"
	case CategoryDynamic:
		return "Recent Transactions"
	default:
		return "Other"
	}
}

// Action performs an item's effect. The engine never inspects it.
type Action func()

// Item is one selectable palette row. Items are immutable for the lifetime of
// a snapshot.
type Item struct {
	ID          string
	Label       string
	Description string
	Category    Category
	Keywords    []string
	Action      Action
}

func (i Item) invoke() {
	if i.Action != nil {
		i.Action()
	}
}
