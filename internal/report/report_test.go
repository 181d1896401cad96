package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Guliveer/hwinfo/internal/collector"
	"github.com/Guliveer/hwinfo/internal/models"
)

type stubCollector struct {
	name models.Component
	data any
	err  error
}

func (s *stubCollector) Name() models.Component { return s.name }
func (s *stubCollector) IsAvailable() bool      { return true }
func (s *stubCollector) Collect(context.Context, models.Verbosity) (any, error) {
	return s.data, s.err
}

func testRegistry() *collector.Registry {
	r := collector.NewRegistry(zap.NewNop())
	r.Register(&stubCollector{name: models.System, data: collector.SystemInfo{
		Hostname: "host-a", OSName: "Ubuntu", SerialNumber: "SYS-SN", UUID: "uuid-1",
	}})
	r.Register(&stubCollector{name: models.CPU, data: collector.CPUInfo{
		Name: "Test CPU", Cores: 4, Threads: 8, Architecture: "x86_64", Vendor: "GenuineIntel",
	}})
	r.Register(&stubCollector{name: models.Memory, data: collector.MemoryInfo{
		TotalBytes: 1 << 30,
		Modules:    []collector.MemoryModule{{Locator: "DIMM0", SerialNumber: "MEM-SN", AssetTag: ""}},
	}})
	r.Register(&stubCollector{name: models.Storage, err: errors.New("no block devices")})
	r.Register(&stubCollector{
		name: models.GPU,
		data: collector.GPUInfo{Count: 1, Adapters: []collector.GPUAdapter{{Name: "GPU0", SerialNumber: "GPU-SN"}}},
		err:  errors.New("nvidia-smi: exit status 9"),
	})
	// motherboard has no collector
	return r
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestBuild_SelectionKeySet(t *testing.T) {
	b := NewBuilder(testRegistry(), zap.NewNop())

	tests := []struct {
		name      string
		selection []models.Component
		want      []models.Component
	}{
		{"all", nil, models.AllComponents()},
		{"single", []models.Component{models.CPU}, []models.Component{models.CPU}},
		{"subset", []models.Component{models.Memory, models.GPU}, []models.Component{models.Memory, models.GPU}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := b.Build(context.Background(), Options{Components: tt.selection})
			assert.Equal(t, tt.want, rep.Components())
		})
	}
}

func TestBuild_MinimalCPUWithoutTimestamp(t *testing.T) {
	b := NewBuilder(testRegistry(), zap.NewNop())
	rep := b.Build(context.Background(), Options{
		Components: []models.Component{models.CPU},
		Verbosity:  models.Minimal,
	})

	assert.Empty(t, rep.Timestamp)
	rec, ok := rep.Section(models.CPU)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "cores", "threads", "architecture"}, rec.Names())
}

func TestBuild_EmbedsErrors(t *testing.T) {
	b := NewBuilder(testRegistry(), zap.NewNop())
	rep := b.Build(context.Background(), Options{})

	storage, _ := rep.Section(models.Storage)
	assert.Equal(t, models.Record{{Name: models.ErrorField, Value: "no block devices"}}, storage)

	gpu, _ := rep.Section(models.GPU)
	assert.Equal(t, []string{"count", "adapters", models.ErrorField}, gpu.Names())
	msg, _ := gpu.Get(models.ErrorField)
	assert.Equal(t, "nvidia-smi: exit status 9", msg)

	board, _ := rep.Section(models.Motherboard)
	msg, _ = board.Get(models.ErrorField)
	assert.Equal(t, collector.ErrUnavailable.Error(), msg)
}

func TestBuild_ConversionErrorIsEmbedded(t *testing.T) {
	r := collector.NewRegistry(zap.NewNop())
	r.Register(&stubCollector{name: models.CPU, data: "not a struct"})

	rep := NewBuilder(r, zap.NewNop()).Build(context.Background(), Options{Components: []models.Component{models.CPU}})
	rec, _ := rep.Section(models.CPU)
	msg, ok := rec.Get(models.ErrorField)
	require.True(t, ok)
	assert.Contains(t, msg, models.ErrArgNotStruct.Error())
}

func TestBuild_Timestamp(t *testing.T) {
	b := NewBuilder(testRegistry(), zap.NewNop()).WithClock(fixedClock)
	rep := b.Build(context.Background(), Options{Components: []models.Component{models.CPU}, IncludeTimestamp: true})
	assert.Equal(t, "2024-03-01T12:30:00Z", rep.Timestamp)
}

func TestBuild_ExcludeSerials(t *testing.T) {
	b := NewBuilder(testRegistry(), zap.NewNop())
	rep := b.Build(context.Background(), Options{ExcludeSerials: true})

	var serial, other int
	for _, s := range rep.Sections {
		for _, l := range s.Record.Leaves() {
			if l.Serial {
				serial++
				assert.Equal(t, models.RedactedPlaceholder, l.Value, "%s.%s", s.Component, l.Path)
			} else if l.Value == models.RedactedPlaceholder {
				other++
			}
		}
	}
	assert.Positive(t, serial)
	assert.Zero(t, other)

	sys, _ := rep.Section(models.System)
	host, _ := sys.Get("hostname")
	assert.Equal(t, "host-a", host)
}

func TestRedact_Idempotent(t *testing.T) {
	rec := models.Record{
		{Name: "name", Value: "disk"},
		{Name: "serial_number", Value: "ABC", Serial: true},
		{Name: "empty_serial", Value: "", Serial: true},
		{Name: "already", Value: models.RedactedPlaceholder, Serial: true},
		{Name: "parts", Value: []models.Record{
			{{Name: "serial_number", Value: "P1", Serial: true}},
		}},
		{Name: "nested", Value: models.Record{{Name: "wwn", Value: "W", Serial: true}}},
	}

	once := Redact(rec)
	twice := Redact(once)
	assert.Equal(t, once, twice)

	for _, l := range once.Leaves() {
		if l.Serial {
			assert.Equal(t, models.RedactedPlaceholder, l.Value, l.Path)
		}
	}
	assert.Equal(t, "disk", once[0].Value)
	// the input is left untouched
	assert.Equal(t, "ABC", rec[1].Value)
}
