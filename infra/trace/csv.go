// Package trace loads aligned power traces from CSV files. The expected
// columns are demand_mw and renewable_mw, plus an optional carbon_intensity
// column; extra columns are ignored.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gridcap/renew247/core/model"
)

// Read parses a CSV trace from r.
func Read(r io.Reader) (model.Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	demandCol, ok := cols["demand_mw"]
	if !ok {
		return nil, fmt.Errorf("missing demand_mw column")
	}
	renCol, ok := cols["renewable_mw"]
	if !ok {
		return nil, fmt.Errorf("missing renewable_mw column")
	}
	carbonCol, hasCarbon := cols["carbon_intensity"]

	var series model.Series
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		var s model.PowerSample
		if s.DemandMW, err = strconv.ParseFloat(rec[demandCol], 64); err != nil {
			return nil, fmt.Errorf("line %d: demand_mw: %w", line, err)
		}
		if s.RenewableMW, err = strconv.ParseFloat(rec[renCol], 64); err != nil {
			return nil, fmt.Errorf("line %d: renewable_mw: %w", line, err)
		}
		if hasCarbon {
			if s.CarbonIntensity, err = strconv.ParseFloat(rec[carbonCol], 64); err != nil {
				return nil, fmt.Errorf("line %d: carbon_intensity: %w", line, err)
			}
		}
		series = append(series, s)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("trace contains no samples")
	}
	return series, nil
}

// ReadFile parses a CSV trace from the file at path.
func ReadFile(path string) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
