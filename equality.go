package rx

import "reflect"

// EqualsFunc decides whether a new value should be treated as unchanged
// relative to the previous one, suppressing notification when true.
type EqualsFunc[T any] func(a, b T) bool

// Strict compares with Go's == where T is comparable, falling back to
// reflect.DeepEqual for types that cannot be used with ==; this mirrors
// the teacher's own isEqual indirection, generalized into a typed
// strategy selected at construction instead of a single hardcoded stub.
func Strict[T any]() EqualsFunc[T] {
	return func(a, b T) bool {
		av, bv := any(a), any(b)
		if av == nil || bv == nil {
			return av == bv
		}
		if reflect.TypeOf(av).Comparable() {
			return av == bv
		}
		return reflect.DeepEqual(av, bv)
	}
}

// Shallow treats two values as equal when they are reference-equal, or
// when both are maps/structs/slices with identical own-key sets and
// reference-equal values per key/index (spec §4.1 shallowEquals).
func Shallow[T any]() EqualsFunc[T] {
	return func(a, b T) bool {
		return ShallowEquals(any(a), any(b))
	}
}

// ByKey compares two values by projecting them through key and comparing
// the projections with ==, useful for identifying records by a stable id
// field regardless of other field churn.
func ByKey[T any, K comparable](key func(T) K) EqualsFunc[T] {
	return func(a, b T) bool {
		return key(a) == key(b)
	}
}

// Never never short-circuits a write; every Set notifies regardless of
// value equality.
func Never[T any]() EqualsFunc[T] {
	return func(a, b T) bool { return false }
}

// ShallowEquals implements spec §4.1's shallowEquals: reference/value
// equal, or both maps/structs/slices/arrays with identical own-key sets
// and reference-equal (==, for comparable element types) values per key.
func ShallowEquals(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)

	if av.Type() != bv.Type() {
		return false
	}

	switch av.Kind() {
	case reflect.Map:
		if av.Len() != bv.Len() {
			return false
		}
		iter := av.MapRange()
		for iter.Next() {
			k := iter.Key()
			bvVal := bv.MapIndex(k)
			if !bvVal.IsValid() {
				return false
			}
			if !shallowValueEqual(iter.Value(), bvVal) {
				return false
			}
		}
		return true

	case reflect.Slice, reflect.Array:
		if av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			if !shallowValueEqual(av.Index(i), bv.Index(i)) {
				return false
			}
		}
		return true

	case reflect.Struct:
		for i := 0; i < av.NumField(); i++ {
			if !shallowValueEqual(av.Field(i), bv.Field(i)) {
				return false
			}
		}
		return true

	case reflect.Ptr:
		return av.Pointer() == bv.Pointer()

	default:
		if av.Comparable() {
			return av.Interface() == bv.Interface()
		}
		return reflect.DeepEqual(a, b)
	}
}

func shallowValueEqual(a, b reflect.Value) bool {
	if !a.CanInterface() || !b.CanInterface() {
		return reflect.DeepEqual(a, b)
	}
	av, bv := a.Interface(), b.Interface()
	if reflect.TypeOf(av) != nil && reflect.TypeOf(av).Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}
