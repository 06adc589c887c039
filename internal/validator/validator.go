package validator

import (
	"fmt"
	"reflect"

	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New()

// Validate returns an error if any dependency of the named component is nil
// or the zero value of its type.
func Validate(name string, deps ...any) error {
	for _, dep := range deps {
		if missing(dep) {
			return fmt.Errorf("missing required deps for component: %s", name)
		}
	}

	return nil
}

// Struct checks the `validate` tags of s.
func Struct(s any) error {
	return validate.Struct(s)
}

// Map checks data against go-playground map rules and returns the violations
// keyed by field. A rule on a key absent from data is checked against nil, so
// "required" reports missing keys.
func Map(data map[string]any, rules map[string]any) map[string]error {
	raw := validate.ValidateMap(data, rules)
	if len(raw) == 0 {
		return nil
	}

	errs := make(map[string]error, len(raw))
	for field, v := range raw {
		if err, ok := v.(error); ok {
			errs[field] = err
			continue
		}
		errs[field] = fmt.Errorf("invalid field %s: %v", field, v)
	}

	return errs
}

// IsNil reports whether v is nil or an interface holding a nil pointer, map,
// slice, channel or func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func missing(dep any) bool {
	if dep == nil {
		return true
	}

	v := reflect.ValueOf(dep)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}
