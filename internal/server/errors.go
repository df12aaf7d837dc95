package server

import (
	"errors"

	"github.com/dukerupert/memosync/internal/store"
)

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
