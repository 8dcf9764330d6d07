package decision

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"occupancy",
		"prior_action",
		"prior_action_cost",
		"posterior_action",
		"posterior_cost",
		"infection_prob",
		"information_gain",
		"cum_mean_posterior_cost",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.Occupancy),
			r.PriorAction,
			fmtFloat(r.PriorActionCost),
			r.PosteriorAction,
			fmtFloat(r.PosteriorCost),
			fmtFloat(r.InfectionProb),
			fmtFloat(r.InformationGain),
			fmtFloat(r.CumMeanPosterior),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
