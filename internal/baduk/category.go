package baduk

import "fmt"

// CategoryUndefined is returned when a value is not one of a table's
// defined categories. A user-tuned numeric field that matches no category
// presents as "custom" instead of snapping to the nearest one.
const CategoryUndefined = -1

// CategoryTable is an ordered bijection between a closed index range and a
// finite set of domain values, backing the category pickers on the
// settings surfaces.
type CategoryTable struct {
	name   string
	values []uint64
	index  map[uint64]int
}

// NewCategoryTable builds a table over the given ordered values. Values
// must be unique.
func NewCategoryTable(name string, values []uint64) *CategoryTable {
	t := &CategoryTable{
		name:   name,
		values: append([]uint64(nil), values...),
		index:  make(map[uint64]int, len(values)),
	}
	for i, v := range t.values {
		t.index[v] = i
	}
	return t
}

func (t *CategoryTable) Name() string { return t.name }

func (t *CategoryTable) Len() int { return len(t.values) }

// Value returns the domain value for a category index. The index range is
// closed; an out-of-range index is a caller error.
func (t *CategoryTable) Value(category int) (uint64, error) {
	if category < 0 || category >= len(t.values) {
		return 0, fmt.Errorf("%s category %d out of range 0-%d", t.name, category, len(t.values)-1)
	}
	return t.values[category], nil
}

// Category returns the index for a domain value, or CategoryUndefined when
// the value is not in the table.
func (t *CategoryTable) Category(value uint64) int {
	if i, ok := t.index[value]; ok {
		return i
	}
	return CategoryUndefined
}

var (
	// MaxGamesCategories backs the "maximum games" picker. The final
	// category is the unlimited sentinel.
	MaxGamesCategories = NewCategoryTable("max games", []uint64{
		1, 10, 100, 500, 1000, 2000, 5000, 10000, 15000, 20000, 50000, MaxGamesUnlimited,
	})

	// ResignMinGamesCategories backs the manual resign-min-games picker.
	ResignMinGamesCategories = NewCategoryTable("resign min games", []uint64{
		5, 10, 20, 50, 100, 250, 500, 1000,
	})

	// ResignThresholdCategories backs the per-board-size threshold picker.
	// Values are win-estimate percentages; the preset tuples all draw from
	// this set.
	ResignThresholdCategories = NewCategoryTable("resign threshold", []uint64{
		0, 2, 5, 8, 10, 20, 30,
	})
)
