package biz

import "reflect"

// IsNil reports whether i is nil or a typed nil of a nillable kind.
func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}
	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}
