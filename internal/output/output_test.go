package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"

	"github.com/Guliveer/hwinfo/internal/models"
	"github.com/Guliveer/hwinfo/internal/render"
)

func TestSink_Stdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	s := New(Options{Stdout: &stdout, Stderr: &stderr}, zap.NewNop())

	require.NoError(t, s.Write([]byte("{\"cpu\":{}}\n")))
	assert.Equal(t, "{\"cpu\":{}}\n", stdout.String())
	assert.Empty(t, stderr.String())

	stdout.Reset()
	require.NoError(t, s.Write([]byte(`{"cpu":{}}`)))
	assert.Equal(t, `{"cpu":{}}`, stdout.String(), "payload must be written unchanged")
}

func TestSink_StdoutUTF16(t *testing.T) {
	rep := &models.Report{Sections: []models.Section{
		{Component: models.CPU, Record: models.Record{{Name: "name", Value: "Prozessor ü"}}},
	}}
	r, err := render.New(render.Config{Format: render.JSON, Encoding: "utf-16le", TrailingNewline: true})
	require.NoError(t, err)
	payload, err := r.Render(rep)
	require.NoError(t, err)

	var stdout bytes.Buffer
	s := New(Options{Stdout: &stdout, Stderr: &bytes.Buffer{}}, zap.NewNop())
	require.NoError(t, s.Write(payload))

	out := stdout.Bytes()
	require.Zero(t, len(out)%2, "odd byte count %d", len(out))
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(out)
	require.NoError(t, err)
	assert.Equal(t, `{"cpu":{"name":"Prozessor ü"}}`+"\n", string(decoded))
}

func TestSink_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	var stdout, stderr bytes.Buffer

	s := New(Options{Path: path, Stdout: &stdout, Stderr: &stderr}, zap.NewNop())
	require.NoError(t, s.Write([]byte(`{"cpu":{}}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"cpu":{}}`, string(data))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Results written to "+path+"\n", stderr.String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSink_FileOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	s := New(Options{Path: path, Quiet: true, Stderr: &bytes.Buffer{}}, zap.NewNop())
	require.NoError(t, s.Write([]byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestSink_Quiet(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "out.csv")
	s := New(Options{Path: path, Quiet: true, Stderr: &stderr}, zap.NewNop())

	require.NoError(t, s.Write([]byte("component,field,value\n")))
	assert.Empty(t, stderr.String())
}

func TestSink_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no", "such", "dir", "out.json")
	var stderr bytes.Buffer

	s := New(Options{Path: path, Stderr: &stderr}, zap.NewNop())
	err := s.Write([]byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Empty(t, stderr.String())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestWriteFileAtomic_RelativePath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, writeFileAtomic("plain.txt", []byte("x"), 0o600))
	data, err := os.ReadFile(filepath.Join(dir, "plain.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}
