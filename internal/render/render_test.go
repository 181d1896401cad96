package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"gopkg.in/yaml.v3"

	"github.com/Guliveer/hwinfo/internal/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		Timestamp: "2024-03-01T12:30:00+09:00",
		Sections: []models.Section{
			{Component: models.CPU, Record: models.Record{
				{Name: "name", Value: "Core <i7> & ü"},
				{Name: "cores", Value: int64(4)},
				{Name: "max_clock_mhz", Value: float64(4800)},
			}},
			{Component: models.Storage, Record: models.Record{
				{Name: "disk_count", Value: int64(1)},
				{Name: "disks", Value: []models.Record{
					{
						{Name: "name", Value: "sda"},
						{Name: "removable", Value: false},
						{Name: "serial_number", Value: "0123", Serial: true},
						{Name: "partitions", Value: []models.Record{
							{{Name: "name", Value: "sda1"}, {Name: "mount_point", Value: "/"}},
							{{Name: "name", Value: "sda2"}, {Name: "mount_point", Value: ""}},
						}},
					},
				}},
			}},
			{Component: models.GPU, Record: models.Record{
				{Name: "count", Value: int64(0)},
				{Name: "adapters", Value: []models.Record{}},
				{Name: models.ErrorField, Value: "pci unavailable"},
			}},
		},
	}
}

func mustRender(t *testing.T, cfg Config, rep *models.Report) []byte {
	t.Helper()
	r, err := New(cfg)
	require.NoError(t, err)
	out, err := r.Render(rep)
	require.NoError(t, err)
	return out
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", Text, false},
		{"json", JSON, false},
		{"YAML", YAML, false},
		{" csv ", CSV, false},
		{"bogus", "", true},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestNew_RejectsBogusFormat(t *testing.T) {
	_, err := New(Config{Format: "bogus"})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), `"bogus"`)
}

func TestNew_RejectsUnknownEncoding(t *testing.T) {
	_, err := New(Config{Format: JSON, Encoding: "klingon-8"})
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestText(t *testing.T) {
	out := mustRender(t, Config{Format: Text, IncludeTimestamp: true}, sampleReport())

	want := `cpu:
  name: Core <i7> & ü
  cores: 4
  max_clock_mhz: 4800
storage:
  disk_count: 1
  disks:
    - name: sda
      removable: false
      serial_number: 0123
      partitions:
        - name: sda1
          mount_point: /
        - name: sda2
          mount_point:
gpu:
  count: 0
  adapters: []
  error: pci unavailable
timestamp: 2024-03-01T12:30:00+09:00
`
	assert.Equal(t, want, string(out))
}

func TestText_NoTimestamp(t *testing.T) {
	out := mustRender(t, Config{Format: Text}, sampleReport())
	assert.NotContains(t, string(out), "timestamp")
}

func TestJSON_CompactAndPrettyAreEquivalent(t *testing.T) {
	compact := mustRender(t, Config{Format: JSON, IncludeTimestamp: true}, sampleReport())
	pretty := mustRender(t, Config{Format: JSON, Pretty: true, IncludeTimestamp: true}, sampleReport())

	assert.NotContains(t, string(compact), "\n")
	assert.Equal(t, strings.TrimSpace(string(compact)), string(compact))
	assert.Contains(t, string(pretty), "\n  \"cpu\": {")

	var a, b map[string]any
	require.NoError(t, json.Unmarshal(compact, &a))
	require.NoError(t, json.Unmarshal(pretty, &b))
	assert.Equal(t, a, b)
}

func TestJSON_OrderAndEscaping(t *testing.T) {
	out := string(mustRender(t, Config{Format: JSON, IncludeTimestamp: true}, sampleReport()))

	assert.True(t, strings.HasPrefix(out, `{"cpu":{"name":"Core <i7> & ü","cores":4,"max_clock_mhz":4800}`), out)
	assert.True(t, strings.HasSuffix(out, `"timestamp":"2024-03-01T12:30:00+09:00"}`), out)
	assert.Less(t, strings.Index(out, `"storage"`), strings.Index(out, `"gpu"`))
	assert.Contains(t, out, `"adapters":[]`)
}

func TestJSON_NoTimestampKey(t *testing.T) {
	out := mustRender(t, Config{Format: JSON}, sampleReport())
	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.NotContains(t, m, "timestamp")
	assert.Len(t, m, 3)
}

func TestJSON_EmptyReport(t *testing.T) {
	out := mustRender(t, Config{Format: JSON, IncludeTimestamp: true}, &models.Report{})
	assert.Equal(t, "{}", string(out))
}

func TestYAML_PreservesTypes(t *testing.T) {
	out := mustRender(t, Config{Format: YAML, IncludeTimestamp: true}, sampleReport())

	var m map[string]any
	require.NoError(t, yaml.Unmarshal(out, &m))

	cpu := m["cpu"].(map[string]any)
	assert.Equal(t, 4, cpu["cores"])
	assert.Equal(t, 4800.0, cpu["max_clock_mhz"])
	assert.Equal(t, "Core <i7> & ü", cpu["name"])

	disk := m["storage"].(map[string]any)["disks"].([]any)[0].(map[string]any)
	assert.Equal(t, "0123", disk["serial_number"])
	assert.Equal(t, false, disk["removable"])

	gpu := m["gpu"].(map[string]any)
	assert.Equal(t, []any{}, gpu["adapters"])

	assert.Equal(t, "2024-03-01T12:30:00+09:00", m["timestamp"])
}

func TestYAML_KeyOrder(t *testing.T) {
	out := string(mustRender(t, Config{Format: YAML, IncludeTimestamp: true}, sampleReport()))
	assert.True(t, strings.HasPrefix(out, "cpu:\n  name: "), out)
	assert.Less(t, strings.Index(out, "storage:"), strings.Index(out, "gpu:"))
	assert.Less(t, strings.Index(out, "gpu:"), strings.Index(out, "timestamp:"))
}

func TestCSV_OneRowPerLeaf(t *testing.T) {
	rep := sampleReport()
	out := mustRender(t, Config{Format: CSV, IncludeTimestamp: true}, rep)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"component", "field", "value"}, rows[0])

	leaves := 0
	for _, s := range rep.Sections {
		leaves += len(s.Record.Leaves())
	}
	// plus the timestamp row
	assert.Len(t, rows[1:], leaves+1)

	assert.Contains(t, rows, []string{"storage", "disks[0].partitions[1].name", "sda2"})
	assert.Contains(t, rows, []string{"cpu", "name", "Core <i7> & ü"})
	assert.Equal(t, []string{"report", "timestamp", "2024-03-01T12:30:00+09:00"}, rows[len(rows)-1])

	seen := make(map[string]bool)
	for _, row := range rows[1:] {
		key := row[0] + "/" + row[1]
		assert.False(t, seen[key], "duplicate row %s", key)
		seen[key] = true
	}
}

func TestDeterminism(t *testing.T) {
	for _, f := range Formats() {
		cfg := Config{Format: f, Pretty: true, IncludeTimestamp: true}
		first := mustRender(t, cfg, sampleReport())
		second := mustRender(t, cfg, sampleReport())
		assert.Equal(t, first, second, string(f))
	}
}

func TestEncoding_ShiftJIS(t *testing.T) {
	rep := &models.Report{Sections: []models.Section{
		{Component: models.GPU, Record: models.Record{{Name: "name", Value: "グラフィックス"}}},
	}}
	plain := mustRender(t, Config{Format: Text}, rep)
	encoded := mustRender(t, Config{Format: Text, Encoding: "shift_jis"}, rep)
	assert.NotEqual(t, plain, encoded)

	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(encoded)
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)
}

func TestEncoding_UnrepresentableIsAnError(t *testing.T) {
	rep := &models.Report{Sections: []models.Section{
		{Component: models.GPU, Record: models.Record{{Name: "name", Value: "グラフィックス"}}},
	}}
	r, err := New(Config{Format: Text, Encoding: "windows-1252"})
	require.NoError(t, err)
	_, err = r.Render(rep)
	assert.Error(t, err)
}

func TestEncoding_UTF8(t *testing.T) {
	rep := sampleReport()
	plain := mustRender(t, Config{Format: JSON}, rep)
	forced := mustRender(t, Config{Format: JSON, Encoding: "UTF-8"}, rep)
	assert.Equal(t, plain, forced)
}

func TestTrailingNewline(t *testing.T) {
	rep := sampleReport()
	for _, f := range Formats() {
		out := mustRender(t, Config{Format: f, TrailingNewline: true}, rep)
		assert.True(t, bytes.HasSuffix(out, []byte("\n")), f)
		assert.False(t, bytes.HasSuffix(out, []byte("\n\n")), f)
	}
	compact := mustRender(t, Config{Format: JSON}, rep)
	assert.False(t, bytes.HasSuffix(compact, []byte("\n")))
}

func TestEncoding_UTF16NewlineIsEncoded(t *testing.T) {
	rep := sampleReport()
	plain := mustRender(t, Config{Format: JSON, TrailingNewline: true}, rep)
	encoded := mustRender(t, Config{Format: JSON, Encoding: "utf-16be", TrailingNewline: true}, rep)

	require.Zero(t, len(encoded)%2)
	assert.True(t, bytes.HasSuffix(encoded, []byte{0x00, '\n'}))
	decoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(encoded)
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)
}

func TestJSON_NonFiniteFloatsAreNull(t *testing.T) {
	rep := &models.Report{Sections: []models.Section{
		{Component: models.Memory, Record: models.Record{
			{Name: "used_percent", Value: math.NaN()},
			{Name: "ratio", Value: math.Inf(1)},
			{Name: "total_bytes", Value: uint64(0)},
		}},
	}}
	out := mustRender(t, Config{Format: JSON}, rep)
	assert.Equal(t, `{"memory":{"used_percent":null,"ratio":null,"total_bytes":0}}`, string(out))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
}

func TestValidateEncoding(t *testing.T) {
	assert.NoError(t, ValidateEncoding(""))
	assert.NoError(t, ValidateEncoding("utf8"))
	assert.NoError(t, ValidateEncoding("euc-jp"))
	assert.ErrorIs(t, ValidateEncoding("nope"), ErrUnsupportedEncoding)
}
