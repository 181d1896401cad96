package models

import "strconv"

// RedactedPlaceholder replaces the value of every serial-bearing field when
// serial redaction is enabled.
const RedactedPlaceholder = "REDACTED"

// ErrorField is the record key a collection error is embedded under.
const ErrorField = "error"

// Field is one named value of a Record.
//
// Value is one of: string, bool, int64, uint64, float64, Record or []Record.
type Field struct {
	Name   string
	Value  any
	Serial bool
}

// Record is an ordered mapping from field name to value. Order is the
// declaration order of the component struct it was converted from.
type Record []Field

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Leaf is a scalar value addressed by its qualified path within a record,
// e.g. "disks[0].partitions[1].mount_point".
type Leaf struct {
	Path   string
	Value  any
	Serial bool
}

// Leaves flattens the record into its scalar values in record order.
// Nested records qualify the path with ".", sequence items with "[i]".
func (r Record) Leaves() []Leaf {
	var out []Leaf
	r.appendLeaves("", &out)
	return out
}

func (r Record) appendLeaves(prefix string, out *[]Leaf) {
	for _, f := range r {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		switch v := f.Value.(type) {
		case Record:
			v.appendLeaves(path, out)
		case []Record:
			for i, item := range v {
				item.appendLeaves(path+"["+strconv.Itoa(i)+"]", out)
			}
		default:
			*out = append(*out, Leaf{Path: path, Value: v, Serial: f.Serial})
		}
	}
}
