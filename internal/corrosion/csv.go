package corrosion

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadMeasurementsCSV reads an inspection table with the header
//
//	wall_loss_mm,error_sd_mm,years,missing
//
// An empty wall_loss_mm field or missing=1 marks an imputable record.
// Malformed rows are load errors, not skipped rows.
func LoadMeasurementsCSV(path string) ([]Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no measurement rows", path)
	}

	header := rows[0]
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"wall_loss_mm", "error_sd_mm", "years"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, required)
		}
	}

	out := make([]Measurement, 0, len(rows)-1)
	for n, row := range rows[1:] {
		var m Measurement

		depthStr := strings.TrimSpace(row[col["wall_loss_mm"]])
		if depthStr == "" {
			m.Missing = true
		} else {
			d, err := strconv.ParseFloat(depthStr, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: bad wall_loss_mm %q", path, n+2, depthStr)
			}
			m.WallLossMM = d
		}

		sd, err := strconv.ParseFloat(strings.TrimSpace(row[col["error_sd_mm"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad error_sd_mm", path, n+2)
		}
		m.ErrorSDMM = sd

		years, err := strconv.ParseFloat(strings.TrimSpace(row[col["years"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad years", path, n+2)
		}
		m.YearsSinceInstall = years

		if idx, ok := col["missing"]; ok {
			flag := strings.TrimSpace(row[idx])
			if flag == "1" || strings.EqualFold(flag, "true") {
				m.Missing = true
			}
		}

		out = append(out, m)
	}
	return out, nil
}

// WriteMeasurementsCSV writes a measurement table in the format
// LoadMeasurementsCSV reads. Used by the fixture generator.
func WriteMeasurementsCSV(path string, ms []Measurement) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"wall_loss_mm", "error_sd_mm", "years", "missing"}); err != nil {
		return err
	}
	for _, m := range ms {
		depth := strconv.FormatFloat(m.WallLossMM, 'f', 4, 64)
		missing := "0"
		if m.Missing {
			depth = ""
			missing = "1"
		}
		row := []string{
			depth,
			strconv.FormatFloat(m.ErrorSDMM, 'f', 4, 64),
			strconv.FormatFloat(m.YearsSinceInstall, 'f', 2, 64),
			missing,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
