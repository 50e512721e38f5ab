package btree

import "reflect"

/*
entry wraps one key. Entries are immutable once created and are shared by pointer,
so a rebuild can move them into fresh nodes without copying keys.
Two entries compare equal iff their keys do.
*/
type entry[K any] struct {
	key K
}

func newEntry[K any](key K) *entry[K] {
	return &entry[K]{key: key}
}

// isNull reports whether key is the absent value for its type: a nil interface,
// or a nil pointer, map, slice, func or chan.
func isNull[K any](key K) bool {
	v := reflect.ValueOf(any(key))
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
