package notes

import (
	"context"

	"github.com/dukerupert/memosync/internal/model"
)

// View is the collection split into the two display groups.
type View struct {
	Pinned []model.Note
	Others []model.Note
}

// Empty reports whether there is nothing to show.
func (v View) Empty() bool {
	return len(v.Pinned) == 0 && len(v.Others) == 0
}

// Partition splits notes into pinned and unpinned groups, keeping the
// collection order inside each group. Every note lands in exactly one group.
func Partition(notes []model.Note) View {
	var v View
	for _, n := range notes {
		if n.IsPinned {
			v.Pinned = append(v.Pinned, n)
		} else {
			v.Others = append(v.Others, n)
		}
	}
	return v
}

// View returns the current partition of the collection.
func (s *Store) View(ctx context.Context) View {
	return Partition(s.List(ctx))
}
