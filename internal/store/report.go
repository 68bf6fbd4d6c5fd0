// internal/store/report.go
package store

import (
	"context"
	"encoding/json"
	"path"
	"strings"
	"time"

	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/report"
)

const reportDir = "reports"

// ReportPath returns the storage path for a symbol's report on a day.
func ReportPath(symbol string, day time.Time) string {
	return path.Join(reportDir, strings.ToUpper(symbol), day.Format("2006-01-02")+".json")
}

// SaveReport writes the report as indented JSON, one file per symbol and
// day. A rerun on the same day replaces the earlier report.
func SaveReport(ctx context.Context, b Backend, r *report.Report) error {
	if r == nil || r.Symbol == "" {
		return core.Wrapf(core.ErrInvalidParams, "report needs a symbol")
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return core.Wrapf(core.ErrStoreFailed, "encode report %s: %v", r.Symbol, err)
	}
	return b.Write(ctx, ReportPath(r.Symbol, r.AsOf), data)
}

// LoadReport reads back a symbol's report for a day. A missing report
// surfaces as core.ErrNotFound from the backend.
func LoadReport(ctx context.Context, b Backend, symbol string, day time.Time) (*report.Report, error) {
	data, err := b.Read(ctx, ReportPath(symbol, day))
	if err != nil {
		return nil, err
	}
	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, core.Wrapf(core.ErrStoreFailed, "decode report %s: %v", symbol, err)
	}
	return &r, nil
}
