package baduk

import "testing"

func TestCategoryTableRoundTrip(t *testing.T) {
	tables := []*CategoryTable{
		MaxGamesCategories, ResignMinGamesCategories, ResignThresholdCategories,
	}
	for _, table := range tables {
		for i := 0; i < table.Len(); i++ {
			v, err := table.Value(i)
			if err != nil {
				t.Fatalf("%s: value(%d): %v", table.Name(), i, err)
			}
			if got := table.Category(v); got != i {
				t.Fatalf("%s: category(%d) = %d, want %d", table.Name(), v, got, i)
			}
		}
	}
}

func TestCategoryUndefinedValues(t *testing.T) {
	for _, v := range []uint64{0, 37, 12345} {
		if got := MaxGamesCategories.Category(v); got != CategoryUndefined {
			t.Fatalf("category(%d) = %d, want undefined", v, got)
		}
	}
}

func TestCategoryValueOutOfRange(t *testing.T) {
	if _, err := MaxGamesCategories.Value(-1); err == nil {
		t.Fatalf("negative category must error")
	}
	if _, err := MaxGamesCategories.Value(MaxGamesCategories.Len()); err == nil {
		t.Fatalf("category past the end must error")
	}
}

func TestPresetThresholdsAreCategoryValues(t *testing.T) {
	for preset, tuple := range resignTuples {
		for _, percent := range tuple.Threshold {
			if ResignThresholdCategories.Category(uint64(percent)) == CategoryUndefined {
				t.Fatalf("preset %v threshold %d is not a picker value", preset, percent)
			}
		}
	}
}

func TestMaxGamesCategoriesEndWithUnlimited(t *testing.T) {
	last, err := MaxGamesCategories.Value(MaxGamesCategories.Len() - 1)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if last != MaxGamesUnlimited {
		t.Fatalf("last category = %d, want the unlimited sentinel", last)
	}
	if got := MaxGamesCategories.Category(MaxGamesUnlimited); got != MaxGamesCategories.Len()-1 {
		t.Fatalf("unlimited maps to category %d", got)
	}
}
