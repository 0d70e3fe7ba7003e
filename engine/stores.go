package engine

import (
	"reflect"
)

// GetStore returns the world's store for component type T, registering it on
// first use. The returned pointer stays valid for the lifetime of the world,
// so systems resolve their stores once at construction and never pay the
// lookup again.
func GetStore[T any](w *World) *Store[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()

	w.storeMu.RLock()
	existing, ok := w.stores[key]
	w.storeMu.RUnlock()
	if ok {
		return existing.(*Store[T])
	}

	w.storeMu.Lock()
	defer w.storeMu.Unlock()
	if existing, ok := w.stores[key]; ok {
		return existing.(*Store[T])
	}

	store := NewStore[T](key.String())
	w.stores[key] = store
	w.storeList = append(w.storeList, store)
	return store
}

// EachStore calls fn for every registered component store.
// Registration order is preserved; stores registered during the pass are
// not visited.
func (w *World) EachStore(fn func(AnyStore)) {
	for _, store := range w.allStores() {
		fn(store)
	}
}

// StoreCount returns the number of registered component stores.
func (w *World) StoreCount() int {
	w.storeMu.RLock()
	defer w.storeMu.RUnlock()
	return len(w.storeList)
}

func (w *World) allStores() []AnyStore {
	w.storeMu.RLock()
	defer w.storeMu.RUnlock()
	result := make([]AnyStore, len(w.storeList))
	copy(result, w.storeList)
	return result
}
