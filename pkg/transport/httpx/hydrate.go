// pkg/transport/httpx/hydrate.go
package httpx

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// hydrate binds matched path variables onto the request struct's fields,
// matched by case-insensitive name. String and integer fields only; the
// body decode owns everything else.
func hydrate(req any, vars map[string]string) error {
	rv := reflect.ValueOf(req)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("httpx: request value must be a non-nil pointer, got %T", req)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("httpx: request type %T is not a struct", req)
	}

	rt := rv.Type()
	for name, raw := range vars {
		field, ok := fieldByFoldedName(rt, name)
		if !ok {
			continue
		}
		fv := rv.FieldByIndex(field.Index)
		if !fv.CanSet() {
			continue
		}
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || fv.OverflowInt(n) {
				return fmt.Errorf("httpx: path variable %q is not a valid %s", name, fv.Kind())
			}
			fv.SetInt(n)
		}
	}
	return nil
}

func fieldByFoldedName(rt reflect.Type, name string) (reflect.StructField, bool) {
	return rt.FieldByNameFunc(func(f string) bool {
		return strings.EqualFold(f, name)
	})
}
