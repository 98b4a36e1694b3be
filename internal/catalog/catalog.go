// Package catalog holds the static descriptions of the supported sorting
// algorithms and the size-based recommendation table.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ID names one of the supported algorithms.
type ID string

const (
	Bubble    ID = "bubble"
	Selection ID = "selection"
	Insertion ID = "insertion"
	Quick     ID = "quick"
	Merge     ID = "merge"
)

// ErrUnknownAlgorithm is returned for ids outside the supported set.
var ErrUnknownAlgorithm = errors.New("catalog: unknown algorithm")

// Descriptor is the immutable metadata shown next to a run.
type Descriptor struct {
	ID              ID     `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	TimeComplexity  string `json:"time_complexity" yaml:"time_complexity"`
	Best            string `json:"best" yaml:"best"`
	Worst           string `json:"worst" yaml:"worst"`
	SpaceComplexity string `json:"space_complexity" yaml:"space_complexity"`
	Stable          bool   `json:"stable" yaml:"stable"`
	Description     string `json:"description" yaml:"description"`
}

var order = []ID{Bubble, Selection, Insertion, Quick, Merge}

var descriptors = map[ID]Descriptor{
	Bubble: {
		ID: Bubble, Name: "Bubble Sort",
		TimeComplexity: "O(n²)", Best: "O(n)", Worst: "O(n²)", SpaceComplexity: "O(1)",
		Stable:      true,
		Description: "Simple but inefficient for large datasets. Good for small arrays or nearly sorted data.",
	},
	Selection: {
		ID: Selection, Name: "Selection Sort",
		TimeComplexity: "O(n²)", Best: "O(n²)", Worst: "O(n²)", SpaceComplexity: "O(1)",
		Stable:      false,
		Description: "Simple and performs well on small arrays. Uses minimal memory.",
	},
	Insertion: {
		ID: Insertion, Name: "Insertion Sort",
		TimeComplexity: "O(n²)", Best: "O(n)", Worst: "O(n²)", SpaceComplexity: "O(1)",
		Stable:      true,
		Description: "Efficient for small data sets and nearly sorted arrays.",
	},
	Quick: {
		ID: Quick, Name: "Quick Sort",
		TimeComplexity: "O(n log n)", Best: "O(n log n)", Worst: "O(n²)", SpaceComplexity: "O(log n)",
		Stable:      false,
		Description: "Generally the fastest in practice. Excellent for large datasets.",
	},
	Merge: {
		ID: Merge, Name: "Merge Sort",
		TimeComplexity: "O(n log n)", Best: "O(n log n)", Worst: "O(n log n)", SpaceComplexity: "O(n)",
		Stable:      true,
		Description: "Consistent performance and stable sorting. Good for linked lists.",
	},
}

// Recommendation thresholds, inclusive upper bounds.
const (
	SmallLimit  = 10
	MediumLimit = 50
)

// IDs returns the supported algorithms in presentation order.
func IDs() []ID {
	ids := make([]ID, len(order))
	copy(ids, order)
	return ids
}

// Describe returns the descriptor for id.
func Describe(id ID) (Descriptor, error) {
	d, ok := descriptors[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(id))
	}
	return d, nil
}

// Parse normalizes user input such as "Quick", "quick sort" or "merge_sort".
func Parse(s string) (ID, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.TrimSpace(strings.TrimSuffix(name, "sort"))
	id := ID(name)
	if _, ok := descriptors[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
	return id, nil
}

// RecommendID returns the algorithm suggested for an input of the given size.
func RecommendID(size int) ID {
	switch {
	case size <= SmallLimit:
		return Insertion
	case size <= MediumLimit:
		return Quick
	default:
		return Merge
	}
}

// Recommend returns the recommendation sentence for an input of the given size.
func Recommend(size int) string {
	switch RecommendID(size) {
	case Insertion:
		return "Insertion Sort - Best for very small arrays (n ≤ 10)"
	case Quick:
		return "Quick Sort - Best for small to medium arrays (10 < n ≤ 50)"
	default:
		return "Merge Sort - Best for large arrays (n > 50) and when stability is important"
	}
}

// Next returns the algorithm after id in presentation order, wrapping around.
func Next(id ID) ID {
	for i, o := range order {
		if o == id {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// Prev returns the algorithm before id in presentation order, wrapping around.
func Prev(id ID) ID {
	for i, o := range order {
		if o == id {
			return order[(i+len(order)-1)%len(order)]
		}
	}
	return order[0]
}
