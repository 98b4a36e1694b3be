package sorting

import (
	"errors"

	"github.com/san-kum/sortviz/internal/catalog"
)

var (
	// ErrUnknownAlgorithm indicates an id outside the supported set.
	ErrUnknownAlgorithm = catalog.ErrUnknownAlgorithm

	// ErrCanceled indicates the run was stopped before the sequence was sorted.
	ErrCanceled = errors.New("sorting: run canceled")

	// ErrEmptySequence indicates there is nothing to sort.
	ErrEmptySequence = errors.New("sorting: empty sequence")

	// ErrMismatchedSequence indicates display and label lengths differ.
	ErrMismatchedSequence = errors.New("sorting: display and label lengths differ")
)
