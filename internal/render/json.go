package render

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/Guliveer/hwinfo/internal/models"
)

// renderJSON writes the report as a JSON object with components as keys in
// report order and "timestamp" last. Records keep their field order.
func renderJSON(rep *models.Report, cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range rep.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONScalar(&buf, string(s.Component)); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONRecord(&buf, s.Record); err != nil {
			return nil, err
		}
	}
	if ts, ok := timestamp(rep, cfg); ok {
		if len(rep.Sections) > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"timestamp":`)
		if err := writeJSONScalar(&buf, ts); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	if !cfg.Pretty {
		return buf.Bytes(), nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	pretty.WriteByte('\n')
	return pretty.Bytes(), nil
}

func writeJSONRecord(buf *bytes.Buffer, rec models.Record) error {
	buf.WriteByte('{')
	for i, f := range rec {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONScalar(buf, f.Name); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeJSONValue(buf, f.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case models.Record:
		return writeJSONRecord(buf, x)
	case []models.Record:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONRecord(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return writeJSONScalar(buf, x)
	}
}

// writeJSONScalar encodes a scalar without HTML escaping. NaN and
// infinities have no JSON form and are written as null.
func writeJSONScalar(buf *bytes.Buffer, v any) error {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		buf.WriteString("null")
		return nil
	}
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
