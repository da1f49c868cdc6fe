package dsl

import (
	"fmt"
	"reflect"
	"strings"

	serde "github.com/opikgo/serde"
)

// structField describes the struct field a selector addresses.
type structField struct {
	goName string
	model  string
}

// resolveSelector finds the top-level field of T that sel returns a pointer
// to. The selector runs once against a scratch value at build time.
func resolveSelector[T, F any](sel func(*T) *F) (structField, error) {
	if sel == nil {
		return structField{}, fmt.Errorf("%w: nil field selector", serde.ErrInvalidSchema)
	}
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return structField{}, fmt.Errorf("%w: model type %s is not a struct", serde.ErrInvalidSchema, rt)
	}
	base := reflect.New(rt)
	p := sel(base.Interface().(*T))
	if p == nil {
		return structField{}, fmt.Errorf("%w: selector on %s returned nil", serde.ErrInvalidSchema, rt)
	}
	addr := reflect.ValueOf(p).Pointer()
	start := base.Pointer()
	if addr < start || addr >= start+rt.Size() {
		return structField{}, fmt.Errorf("%w: selector does not address a field of %s", serde.ErrInvalidSchema, rt)
	}
	off := addr - start
	ft := reflect.TypeFor[F]()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.Offset == off && sf.Type == ft {
			return structField{goName: sf.Name, model: modelName(sf)}, nil
		}
	}
	return structField{}, fmt.Errorf("%w: selector must address a top-level %s field of %s", serde.ErrInvalidSchema, ft, rt)
}

// modelName resolves the model name of a struct field:
// serde:"name=..." tag > json tag > Go field name.
func modelName(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("serde"); ok {
		for _, part := range strings.Split(tag, ",") {
			if name, found := strings.CutPrefix(strings.TrimSpace(part), "name="); found && name != "" {
				return name
			}
		}
	}
	if tag, ok := sf.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}
