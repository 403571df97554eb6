package biz

import (
	"context"

	"github.com/fulexo/platform/internal/store"
)

type AbstractService struct {
	store *store.Store
}

func (a *AbstractService) Store() *store.Store {
	return a.store
}

// RunInTransaction executes fn against a transactional store.
func (a *AbstractService) RunInTransaction(ctx context.Context, fn func(s *store.Store) error) error {
	return a.store.WithTx(ctx, fn)
}
