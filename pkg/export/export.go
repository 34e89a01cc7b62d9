package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gridcap/renew247/core/model"
)

// WriteJSON writes v to w in JSON format.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteSeriesCSV writes the power trace to w with the same column layout the
// loader reads.
func WriteSeriesCSV(w io.Writer, series model.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"demand_mw", "renewable_mw", "carbon_intensity"}); err != nil {
		return err
	}
	for _, s := range series {
		rec := []string{
			strconv.FormatFloat(s.DemandMW, 'f', -1, 64),
			strconv.FormatFloat(s.RenewableMW, 'f', -1, 64),
			strconv.FormatFloat(s.CarbonIntensity, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
