package confmt

import (
	"io"
	"iter"
)

// WriteFields renders fields from an iterator as they arrive, applying the
// same visibility and dispatch rules as [Write]. Use it when fields are
// assembled on the fly (merged views, generated schemas) and materializing
// a Record first would be wasteful. Ordering is the iterator's ordering.
func WriteFields(w io.Writer, seq iter.Seq[Field]) error {
	var writeErr error
	seq(func(f Field) bool {
		if !f.visible() {
			return true
		}
		if err := writeEntry(w, f.Name, f.Value); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	return writeErr
}

// WriteChan renders fields from a channel and writes them to w.
// It is a thin wrapper around [WriteFields].
func WriteChan(w io.Writer, ch <-chan Field) error {
	return WriteFields(w, chanToIter(ch))
}

func chanToIter(ch <-chan Field) iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for f := range ch {
			if !yield(f) {
				return
			}
		}
	}
}
