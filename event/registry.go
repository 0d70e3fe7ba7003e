package event

import (
	"reflect"
	"sync"
)

var (
	namesMu    sync.RWMutex
	typeToName = make(map[reflect.Type]string)
	nameToType = make(map[string]reflect.Type)
)

// RegisterName maps a readable name to an event payload type for logs and
// diagnostics. sample is a value (or pointer to a value) of the payload
// struct. Gameplay modules call this once at startup for their event types;
// unregistered types fall back to their Go type string.
func RegisterName(name string, sample any) {
	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	namesMu.Lock()
	defer namesMu.Unlock()
	typeToName[t] = name
	nameToType[name] = t
}

// NameOf returns the registered name for an event payload type,
// or the Go type string when unregistered.
func NameOf(t reflect.Type) string {
	namesMu.RLock()
	name, ok := typeToName[t]
	namesMu.RUnlock()
	if ok {
		return name
	}
	return t.String()
}

// TypeByName returns the payload type registered under name.
func TypeByName(name string) (reflect.Type, bool) {
	namesMu.RLock()
	defer namesMu.RUnlock()
	t, ok := nameToType[name]
	return t, ok
}
