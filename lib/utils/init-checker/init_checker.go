// Package initchecker guards handler constructors against providers that were not set up yet.
package initchecker

import (
	"fmt"
	"reflect"
	"strings"
)

// CheckInit takes name/value pairs and panics listing every nil value.
// A typed nil pointer stored in an interface counts as nil.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: odd number of arguments")
	}
	missing := []string{}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("CheckInit: argument %d must be a dependency name", i))
		}
		if isNil(pairs[i+1]) {
			missing = append(missing, name)
		}
	}
	if len(missing) != 0 {
		panic(fmt.Sprintf("dependencies not initialized: %s", strings.Join(missing, ", ")))
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
