package render

import (
	"bytes"
	"strings"

	"github.com/Guliveer/hwinfo/internal/models"
)

const textIndent = "  "

// renderText writes one "component:" section per component with indented
// "field: value" lines. Sequence items start with "- ".
func renderText(rep *models.Report, cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	for _, s := range rep.Sections {
		buf.WriteString(string(s.Component))
		buf.WriteString(":\n")
		writeTextRecord(&buf, s.Record, 1)
	}
	if ts, ok := timestamp(rep, cfg); ok {
		buf.WriteString("timestamp: ")
		buf.WriteString(ts)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func writeTextRecord(buf *bytes.Buffer, rec models.Record, depth int) {
	indent := strings.Repeat(textIndent, depth)
	for _, f := range rec {
		switch v := f.Value.(type) {
		case models.Record:
			buf.WriteString(indent + f.Name + ":\n")
			writeTextRecord(buf, v, depth+1)
		case []models.Record:
			if len(v) == 0 {
				buf.WriteString(indent + f.Name + ": []\n")
				continue
			}
			buf.WriteString(indent + f.Name + ":\n")
			for _, item := range v {
				writeTextItem(buf, item, depth+1)
			}
		default:
			value := formatScalar(v)
			if value == "" {
				buf.WriteString(indent + f.Name + ":\n")
				continue
			}
			buf.WriteString(indent + f.Name + ": " + value + "\n")
		}
	}
}

// writeTextItem writes one sequence item: its first line is marked "- ",
// the rest align with the first field.
func writeTextItem(buf *bytes.Buffer, item models.Record, depth int) {
	indent := strings.Repeat(textIndent, depth)
	if len(item) == 0 {
		buf.WriteString(indent + "-\n")
		return
	}
	var tmp bytes.Buffer
	writeTextRecord(&tmp, item, depth+1)
	inner := indent + textIndent
	buf.WriteString(indent + "- ")
	buf.Write(bytes.TrimPrefix(tmp.Bytes(), []byte(inner)))
}
