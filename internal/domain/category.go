package domain

import (
	"fmt"
	"strings"
)

// Category is a label used to filter flash cards.
type Category string

// CategoryAll is the pseudo-category meaning "no filter".
const CategoryAll Category = "All"

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// CategorySet is an ordered, fixed list of categories. The zero value is an
// empty set.
type CategorySet struct {
	items []Category
}

// Category presets.
var (
	// StandardCategories is the list shown by the browser with category highlighting.
	StandardCategories = MustCategorySet("Angular", "Node", "MongoDB")

	// StarterCategories is the list used by the starter browser layout.
	StarterCategories = MustCategorySet("MongoDB", "Express", "Angular", "Node")
)

// NewCategorySet builds a set from labels in the given order. Labels are
// trimmed; empty labels and the reserved "All" label are rejected.
// Duplicates are kept as given.
func NewCategorySet(labels ...string) (CategorySet, error) {
	items := make([]Category, 0, len(labels))
	for i, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return CategorySet{}, NewValidationError(
				fmt.Sprintf("categories[%d]", i), "cannot be empty", ErrInvalidCategory)
		}
		if Category(label) == CategoryAll {
			return CategorySet{}, NewValidationError(
				fmt.Sprintf("categories[%d]", i), "uses the reserved label All", ErrInvalidCategory)
		}
		items = append(items, Category(label))
	}
	return CategorySet{items: items}, nil
}

// MustCategorySet is NewCategorySet that panics on error, for package-level presets.
func MustCategorySet(labels ...string) CategorySet {
	set, err := NewCategorySet(labels...)
	if err != nil {
		// ALLOW-PANIC: only used with literal presets
		panic(err)
	}
	return set
}

// Len returns the number of categories.
func (s CategorySet) Len() int {
	return len(s.items)
}

// Contains reports whether c is one of the categories.
func (s CategorySet) Contains(c Category) bool {
	for _, item := range s.items {
		if item == c {
			return true
		}
	}
	return false
}

// Slice returns a copy of the categories in order.
func (s CategorySet) Slice() []Category {
	return append([]Category(nil), s.items...)
}

// Strings returns the categories as plain strings in order.
func (s CategorySet) Strings() []string {
	out := make([]string, len(s.items))
	for i, item := range s.items {
		out[i] = string(item)
	}
	return out
}
