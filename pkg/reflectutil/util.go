package reflectutil

import (
	"reflect"
	"strings"
)

type TaggedField struct {
	Name    string
	Options []string
	Value   reflect.Value
}

func (f TaggedField) HasOption(option string) bool {
	for _, o := range f.Options {
		if o == option {
			return true
		}
	}

	return false
}

// TaggedFields returns the settable fields of the struct pointed by ptr which
// carry the given tag. The tag value is split by comma into a name followed by
// options, the same convention as encoding/json.
func TaggedFields(ptr any, tag string) []TaggedField {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	var fields []TaggedField
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		value, ok := t.Field(i).Tag.Lookup(tag)
		if !ok || !v.Field(i).CanSet() {
			continue
		}

		name, options, _ := strings.Cut(value, ",")
		field := TaggedField{Name: name, Value: v.Field(i)}
		if options != "" {
			field.Options = strings.Split(options, ",")
		}

		fields = append(fields, field)
	}

	return fields
}
