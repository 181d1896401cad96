// Package report assembles the inventory report. It runs the selected
// collectors through the registry, converts their results into ordered
// records at the requested verbosity, embeds collection errors, redacts
// serial numbers and stamps the report.
package report

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/hwinfo/internal/collector"
	"github.com/Guliveer/hwinfo/internal/models"
)

// TimestampLayout is the format of the report timestamp.
const TimestampLayout = time.RFC3339

// Options selects what goes into a report.
type Options struct {
	// Components to collect. Empty means all six.
	Components       []models.Component
	Verbosity        models.Verbosity
	ExcludeSerials   bool
	IncludeTimestamp bool
}

// Builder produces reports from a collector registry.
type Builder struct {
	registry *collector.Registry
	logger   *zap.Logger
	now      func() time.Time
}

// NewBuilder creates a Builder that collects through the given registry.
func NewBuilder(registry *collector.Registry, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the wall clock used for the report timestamp.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build collects the selected components and assembles the report.
// Collection errors are embedded in the affected component's record and
// never fail the build.
func (b *Builder) Build(ctx context.Context, opts Options) *models.Report {
	names := opts.Components
	if len(names) == 0 {
		names = models.AllComponents()
	}

	results := b.registry.CollectAll(ctx, names, opts.Verbosity)

	rep := &models.Report{Sections: make([]models.Section, 0, len(results))}
	for _, res := range results {
		rec := b.record(res, opts.Verbosity)
		if opts.ExcludeSerials {
			rec = Redact(rec)
		}
		rep.Sections = append(rep.Sections, models.Section{Component: res.Name, Record: rec})
	}

	if opts.IncludeTimestamp {
		rep.Timestamp = b.now().Format(TimestampLayout)
	}

	b.logger.Debug("Report assembled",
		zap.Int("components", len(rep.Sections)),
		zap.Stringer("verbosity", opts.Verbosity))
	return rep
}

// record converts one collector result. A partial record keeps its fields
// and gains a trailing error field.
func (b *Builder) record(res models.CollectorResult, verbosity models.Verbosity) models.Record {
	rec := models.Record{}
	err := res.Error

	if res.Data != nil {
		converted, convErr := models.ToRecord(res.Data, verbosity)
		if convErr != nil {
			b.logger.Warn("Cannot convert collector result",
				zap.String("collector", string(res.Name)),
				zap.Error(convErr))
			err = errors.Join(err, convErr)
		} else {
			rec = converted
		}
	}

	if err != nil {
		rec = append(rec, models.Field{Name: models.ErrorField, Value: cause(err)})
	}
	return rec
}

func cause(err error) string {
	var cerr *collector.CollectionError
	if errors.As(err, &cerr) {
		return cerr.Cause()
	}
	return err.Error()
}

// Redact returns a copy of rec with every serial-bearing field, at any
// depth, replaced by models.RedactedPlaceholder. Keys are never removed and
// redacting twice yields the same record.
func Redact(rec models.Record) models.Record {
	if rec == nil {
		return nil
	}
	out := make(models.Record, len(rec))
	for i, f := range rec {
		switch v := f.Value.(type) {
		case models.Record:
			f.Value = Redact(v)
		case []models.Record:
			items := make([]models.Record, len(v))
			for j, item := range v {
				items[j] = Redact(item)
			}
			f.Value = items
		default:
			if f.Serial {
				f.Value = models.RedactedPlaceholder
			}
		}
		out[i] = f
	}
	return out
}
