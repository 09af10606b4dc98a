package rx

import (
	"reflect"
	"regexp"
	"time"
)

// SnapshotMode selects how DeepSnapshot reads the signals it encounters.
type SnapshotMode int

const (
	// SnapshotPeek reads every embedded signal with Peek (no tracking).
	SnapshotPeek SnapshotMode = iota
	// SnapshotTrack reads every embedded signal with Get (tracking read).
	SnapshotTrack
)

// DeepSnapshot returns a plain copy of value where every signal found is
// replaced by its current value, per mode. Cyclic references are detected
// by an identity set and pass through unchanged; time.Time and
// *regexp.Regexp instances pass through by reference rather than being
// walked field-by-field (spec §4.1).
func DeepSnapshot(value any, mode SnapshotMode) any {
	seen := map[any]bool{}
	return snapshotValue(reflect.ValueOf(value), mode, seen)
}

func snapshotValue(v reflect.Value, mode SnapshotMode, seen map[any]bool) any {
	if !v.IsValid() {
		return nil
	}

	if sig, ok := v.Interface().(AnySignal); ok {
		var inner any
		if mode == SnapshotTrack {
			inner = sig.Get()
		} else {
			inner = sig.Peek()
		}
		return snapshotValue(reflect.ValueOf(inner), mode, seen)
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		if isOpaque(v.Interface()) {
			return v.Interface()
		}
		key := v.Interface()
		if v.Kind() == reflect.Ptr {
			if seen[key] {
				return v.Interface()
			}
			seen[key] = true
		}
		return snapshotValue(v.Elem(), mode, seen)

	case reflect.Map:
		if isOpaque(v.Interface()) {
			return v.Interface()
		}
		out := reflect.MakeMap(v.Type())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), reflect.ValueOf(snapshotValue(iter.Value(), mode, seen)))
		}
		return out.Interface()

	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = snapshotValue(v.Index(i), mode, seen)
		}
		return out

	case reflect.Array:
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = snapshotValue(v.Index(i), mode, seen)
		}
		return out

	case reflect.Struct:
		if isOpaque(v.Interface()) {
			return v.Interface()
		}
		out := map[string]any{}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			out[field.Name] = snapshotValue(v.Field(i), mode, seen)
		}
		return out

	default:
		return v.Interface()
	}
}

// isOpaque reports the value types that pass through by reference instead
// of being walked (spec §4.1: "Date and regexp instances pass through by
// reference").
func isOpaque(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time, *regexp.Regexp:
		return true
	default:
		return false
	}
}
