package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// TagName is the struct tag read by ToRecord.
//
// The tag value is "name[,minimal][,serial]" or ",extra":
//   - name: the field name in the record
//   - minimal: the field is part of the minimal subset
//   - serial: the field carries a serial number or unique identifier
//   - extra: a map[string]any of platform-specific fields, emitted at the
//     detailed level only, in sorted key order
//
// Fields without the tag, or tagged "-", are ignored.
const TagName = "hw"

var (
	// ErrArgNotStruct means the argument should be a struct but wasn't.
	ErrArgNotStruct = errors.New("argument is not a struct")
	// ErrCannotRender means a field whose type cannot be rendered.
	ErrCannotRender = errors.New("field type cannot be rendered")
)

type fieldTag struct {
	name    string
	minimal bool
	serial  bool
	extra   bool
}

func parseTag(tag string) (fieldTag, bool) {
	if tag == "" || tag == "-" {
		return fieldTag{}, false
	}
	parts := strings.Split(tag, ",")
	ft := fieldTag{name: parts[0]}
	for _, opt := range parts[1:] {
		switch opt {
		case "minimal":
			ft.minimal = true
		case "serial":
			ft.serial = true
		case "extra":
			ft.extra = true
		}
	}
	return ft, ft.name != "" || ft.extra
}

// ToRecord converts a tagged component struct (or pointer to one) into an
// ordered Record at the given verbosity. Detailed-only fields are dropped at
// Minimal; field names never change between levels.
func ToRecord(v any, verbosity Verbosity) (Record, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, ErrArgNotStruct
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrArgNotStruct
	}
	return structRecord(rv, verbosity)
}

func structRecord(rv reflect.Value, verbosity Verbosity) (Record, error) {
	rt := rv.Type()
	rec := make(Record, 0, rt.NumField())

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, ok := parseTag(sf.Tag.Get(TagName))
		if !ok {
			continue
		}
		if verbosity == Minimal && !tag.minimal {
			continue
		}

		if tag.extra {
			extra, err := extraFields(rv.Field(i))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", sf.Name, err)
			}
			rec = append(rec, extra...)
			continue
		}

		value, err := convertValue(rv.Field(i), verbosity)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sf.Name, err)
		}
		rec = append(rec, Field{Name: tag.name, Value: value, Serial: tag.serial})
	}

	return rec, nil
}

func convertValue(v reflect.Value, verbosity Verbosity) (any, error) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Struct:
		return structRecord(v, verbosity)
	case reflect.Slice:
		elem := v.Type().Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			return nil, ErrCannotRender
		}
		items := make([]Record, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item := v.Index(i)
			for item.Kind() == reflect.Pointer {
				if item.IsNil() {
					break
				}
				item = item.Elem()
			}
			if item.Kind() != reflect.Struct {
				continue
			}
			rec, err := structRecord(item, verbosity)
			if err != nil {
				return nil, err
			}
			items = append(items, rec)
		}
		return items, nil
	case reflect.Interface:
		if v.IsNil() {
			return "", nil
		}
		return convertValue(v.Elem(), verbosity)
	}
	return nil, ErrCannotRender
}

func extraFields(v reflect.Value) (Record, error) {
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil, ErrCannotRender
	}
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	rec := make(Record, 0, len(keys))
	for _, k := range keys {
		value, err := convertValue(v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())), Detailed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		rec = append(rec, Field{Name: k, Value: value})
	}
	return rec, nil
}

// SerialFields lists the qualified names of the serial-bearing fields declared
// by a component struct type. Sequence elements are written as "name[]".
func SerialFields(v any) []string {
	rt := reflect.TypeOf(v)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil
	}
	var out []string
	serialFields(rt, "", &out)
	return out
}

func serialFields(rt reflect.Type, prefix string, out *[]string) {
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag, ok := parseTag(sf.Tag.Get(TagName))
		if !ok || tag.extra {
			continue
		}
		path := tag.name
		if prefix != "" {
			path = prefix + "." + tag.name
		}
		if tag.serial {
			*out = append(*out, path)
		}
		ft := sf.Type
		if ft.Kind() == reflect.Slice {
			ft = ft.Elem()
			path += "[]"
		}
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			serialFields(ft, path, out)
		}
	}
}
