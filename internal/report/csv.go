// Package report renders a Solution as tabular output for the CLI, the
// way the original dispatch ledger was written to CSV.
package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"unit-commitment/internal/model"
)

// WriteScheduleCSV writes one row per unit per period: commitment status,
// dispatched power, and the unit's ID, so the full schedule can be
// inspected outside the CLI.
func WriteScheduleCSV(path string, units []model.Unit, sol *model.Solution) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"period", "unit_id", "status", "power_mw"}
	if err := w.Write(header); err != nil {
		return err
	}

	for t := 0; t < sol.NumPeriods(); t++ {
		for i, u := range units {
			row := []string{
				strconv.Itoa(t),
				strconv.Itoa(u.ID),
				strconv.Itoa(sol.UnitStatus(i, t)),
				fmtFloat(sol.UnitPower(i, t)),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
