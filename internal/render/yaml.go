package render

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Guliveer/hwinfo/internal/models"
)

// renderYAML writes the report as a block-style YAML mapping built from a
// node tree, so key order and scalar types follow the records exactly.
func renderYAML(rep *models.Report, cfg Config) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range rep.Sections {
		root.Content = append(root.Content, stringNode(string(s.Component)), recordNode(s.Record))
	}
	if ts, ok := timestamp(rep, cfg); ok {
		root.Content = append(root.Content, stringNode("timestamp"), stringNode(ts))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func recordNode(rec models.Record) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range rec {
		n.Content = append(n.Content, stringNode(f.Name), valueNode(f.Value))
	}
	return n
}

func valueNode(v any) *yaml.Node {
	switch x := v.(type) {
	case models.Record:
		return recordNode(x)
	case []models.Record:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range x {
			n.Content = append(n.Content, recordNode(item))
		}
		return n
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(x)}
	case int64, uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: formatScalar(x)}
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(x)}
	default:
		return stringNode(formatScalar(x))
	}
}

// stringNode tags the value as a string; the encoder quotes it whenever it
// would otherwise read back as another type.
func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// yamlFloat formats f so it always reads back as a float.
func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
