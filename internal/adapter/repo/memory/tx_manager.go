package memory

import "context"

// TxManager is a passthrough: every journal operation on the in-memory
// store is already atomic under the store mutex.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
