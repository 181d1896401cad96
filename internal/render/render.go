// Package render turns a report into the final output payload. Each format
// backend walks the ordered records of the report; the configured encoding
// is applied to the rendered text last.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/Guliveer/hwinfo/internal/models"
)

// Format is an output format name.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

var (
	// ErrUnsupportedFormat is returned for an unknown format name.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrUnsupportedEncoding is returned for an unknown encoding name.
	ErrUnsupportedEncoding = errors.New("unsupported output encoding")
)

// Formats returns the supported formats.
func Formats() []Format { return []Format{Text, JSON, YAML, CSV} }

// ParseFormat parses a format name (case-insensitive). An empty name means text.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return Text, nil
	}
	for _, f := range Formats() {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (expected one of text, json, yaml, csv)", ErrUnsupportedFormat, s)
}

// Config describes how a report is rendered. It is built once per
// invocation and passed by value.
type Config struct {
	Format Format
	// Pretty indents JSON output. Other formats ignore it.
	Pretty bool
	// Encoding is a WHATWG encoding name. Empty passes the UTF-8 text through.
	Encoding         string
	IncludeTimestamp bool
	// TrailingNewline terminates the payload with a newline. It is added
	// before transcoding so it is encoded like the rest of the text.
	TrailingNewline bool
}

// Renderer renders reports according to a fixed Config.
type Renderer interface {
	Render(rep *models.Report) ([]byte, error)
	Config() Config
}

type backend func(rep *models.Report, cfg Config) ([]byte, error)

type renderer struct {
	cfg     Config
	backend backend
	enc     encoding.Encoding
}

// New validates cfg and returns the matching renderer. It fails on an
// unknown format or encoding before anything is collected.
func New(cfg Config) (Renderer, error) {
	format, err := ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	enc, err := lookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	var b backend
	switch format {
	case Text:
		b = renderText
	case JSON:
		b = renderJSON
	case YAML:
		b = renderYAML
	case CSV:
		b = renderCSV
	}
	return &renderer{cfg: cfg, backend: b, enc: enc}, nil
}

func (r *renderer) Config() Config { return r.cfg }

// Render produces the payload for rep. Rendering the same report twice
// yields identical bytes.
func (r *renderer) Render(rep *models.Report) ([]byte, error) {
	if rep == nil {
		rep = &models.Report{}
	}
	out, err := r.backend(rep, r.cfg)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", r.cfg.Format, err)
	}
	if r.cfg.TrailingNewline && !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	if strings.TrimSpace(r.cfg.Encoding) == "" {
		return out, nil
	}
	return transcode(out, r.enc)
}

// timestamp returns the report timestamp when it should be rendered.
func timestamp(rep *models.Report, cfg Config) (string, bool) {
	return rep.Timestamp, cfg.IncludeTimestamp && rep.Timestamp != ""
}

// formatScalar renders a scalar record value as text.
func formatScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
