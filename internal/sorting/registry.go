package sorting

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/catalog"
)

type Registry struct {
	algorithms map[catalog.ID]func() Algorithm
}

func NewRegistry() *Registry {
	r := &Registry{
		algorithms: make(map[catalog.ID]func() Algorithm),
	}

	r.algorithms[catalog.Bubble] = func() Algorithm { return Bubble{} }
	r.algorithms[catalog.Selection] = func() Algorithm { return Selection{} }
	r.algorithms[catalog.Insertion] = func() Algorithm { return Insertion{} }
	r.algorithms[catalog.Quick] = func() Algorithm { return Quick{} }
	r.algorithms[catalog.Merge] = func() Algorithm { return Merge{} }

	return r
}

func (r *Registry) Get(id catalog.ID) (Algorithm, error) {
	fn, ok := r.algorithms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(id))
	}
	return fn(), nil
}

// Lookup accepts loose names such as "Quick Sort".
func (r *Registry) Lookup(name string) (Algorithm, error) {
	id, err := catalog.Parse(name)
	if err != nil {
		return nil, err
	}
	return r.Get(id)
}

// IDs lists registered algorithms in catalog order.
func (r *Registry) IDs() []catalog.ID {
	ids := make([]catalog.ID, 0, len(r.algorithms))
	for _, id := range catalog.IDs() {
		if _, ok := r.algorithms[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
