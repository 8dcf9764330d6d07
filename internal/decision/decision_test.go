package decision

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ventilation-voi/internal/dist"
	"ventilation-voi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lectureHall() model.Scenario {
	return model.Scenario{
		Room: model.RoomParams{
			VolumeM3:               300,
			BreathingRateM3PerHour: 0.5,
			EmissionQuantaPerHour:  0.05,
			InfectiousDoseQuanta:   1.0,
			HorizonHours:           8,
			Steps:                  96,
		},
		Actions: []model.VentilationAction{
			{Name: "Poorly_Ventilated", FixedCostUSD: 5, LossRatePerHour: 1.17},
			{Name: "Standard", FixedCostUSD: 30, LossRatePerHour: 3.87},
			{Name: "Well_Ventilated", FixedCostUSD: 45, LossRatePerHour: 6.87},
			{Name: "Hospital_Grade", FixedCostUSD: 90, LossRatePerHour: 12.87},
		},
		SickCostPerCase: 345,
	}
}

func pointMass(occ int) []Weighted {
	return []Weighted{{Occupancy: occ, Weight: 1}}
}

func TestWeightsFromSamples(t *testing.T) {
	w := WeightsFromSamples([]int{4, 4, 7, 4, 9})
	require.Len(t, w, 3)

	sum := 0.0
	byOcc := map[int]float64{}
	for _, x := range w {
		sum += x.Weight
		byOcc[x.Occupancy] = x.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.InDelta(t, 0.6, byOcc[4], 1e-12)
	assert.InDelta(t, 0.2, byOcc[7], 1e-12)

	assert.Nil(t, WeightsFromSamples(nil))
}

func TestDecideTieBreakFirstListed(t *testing.T) {
	sc := lectureHall()
	// Two actions with identical costs and physics: the first listed wins.
	sc.Actions = []model.VentilationAction{
		{Name: "A", FixedCostUSD: 10, LossRatePerHour: 3.87},
		{Name: "B", FixedCostUSD: 10, LossRatePerHour: 3.87},
	}
	ev, err := NewEvaluator(sc)
	require.NoError(t, err)

	dec, err := ev.Decide(pointMass(30))
	require.NoError(t, err)
	assert.Equal(t, "A", dec.Action.Name)
	assert.Equal(t, dec.CostByAction[0], dec.CostByAction[1])
}

func TestDecideInvariantUnderConstantCostShift(t *testing.T) {
	sc := lectureHall()
	ev, err := NewEvaluator(sc)
	require.NoError(t, err)
	base, err := ev.Decide(pointMass(30))
	require.NoError(t, err)

	shifted := lectureHall()
	for i := range shifted.Actions {
		shifted.Actions[i].FixedCostUSD += 500
	}
	ev2, err := NewEvaluator(shifted)
	require.NoError(t, err)
	dec, err := ev2.Decide(pointMass(30))
	require.NoError(t, err)

	assert.Equal(t, base.Action.Name, dec.Action.Name)
	assert.InDelta(t, base.ExpectedCost+500, dec.ExpectedCost, 1e-9)
}

func TestScalingVentilationCostsPushesOptimumDown(t *testing.T) {
	sc := lectureHall()
	ev, err := NewEvaluator(sc)
	require.NoError(t, err)
	base, err := ev.Decide(pointMass(30))
	require.NoError(t, err)

	// Same infection risk, much pricier ventilation: the optimum must move
	// to an action with equal or lower loss rate, never higher.
	expensive := lectureHall()
	for i := range expensive.Actions {
		expensive.Actions[i].FixedCostUSD *= 5
	}
	ev2, err := NewEvaluator(expensive)
	require.NoError(t, err)
	dec, err := ev2.Decide(pointMass(30))
	require.NoError(t, err)

	assert.LessOrEqual(t, dec.Action.LossRatePerHour, base.Action.LossRatePerHour)
	assert.Equal(t, "Poorly_Ventilated", dec.Action.Name)
}

func TestEvaluatorEmptyDistribution(t *testing.T) {
	ev, err := NewEvaluator(lectureHall())
	require.NoError(t, err)

	_, err = ev.Decide(nil)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "EMPTY_DISTRIBUTION", evalErr.Code)
}

func TestNewEvaluatorRejectsInvalidScenario(t *testing.T) {
	sc := lectureHall()
	sc.Actions = nil
	_, err := NewEvaluator(sc)
	assert.Error(t, err)

	sc = lectureHall()
	sc.SickCostPerCase = -1
	_, err = NewEvaluator(sc)
	assert.Error(t, err)
}

func TestEngineCanonicalScenario(t *testing.T) {
	prior, err := dist.NewPoisson(30)
	require.NoError(t, err)
	samples, err := dist.StratifiedSample(prior, 1000)
	require.NoError(t, err)

	res, err := New().Run(samples, lectureHall())
	require.NoError(t, err)

	// The prior-optimal action balances running cost against sickness cost.
	assert.Contains(t, []string{"Standard", "Well_Ventilated"}, res.Prior.Action.Name)
	assert.Greater(t, res.Prior.ExpectedCost, 20.0)
	assert.Less(t, res.Prior.ExpectedCost, 150.0)

	// Perfect information can never hurt in expectation.
	assert.GreaterOrEqual(t, res.EVPI, 0.0)
	assert.InDelta(t, res.Prior.ExpectedCost-res.MeanPosteriorCost, res.EVPI, 1e-9)

	// Row-level: the re-solved decision never costs more than sticking with
	// the prior action at the same occupancy.
	for _, row := range res.Ledger {
		assert.GreaterOrEqual(t, row.InformationGain, -1e-9, "sample %d", row.Index)
		assert.GreaterOrEqual(t, row.InfectionProb, 0.0)
		assert.LessOrEqual(t, row.InfectionProb, 1.0)
	}
}

func TestEngineEVPINonNegativeAcrossPriors(t *testing.T) {
	for _, mean := range []float64{3, 12, 30, 80} {
		prior, err := dist.NewPoisson(mean)
		require.NoError(t, err)
		samples, err := dist.StratifiedSample(prior, 400)
		require.NoError(t, err)

		res, err := New().Run(samples, lectureHall())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.EVPI, 0.0, "prior mean %v", mean)
	}
}

func TestEngineNoSamples(t *testing.T) {
	_, err := New().Run(nil, lectureHall())
	assert.Error(t, err)
}

func TestWriteLedgerCSV(t *testing.T) {
	prior, err := dist.NewPoisson(10)
	require.NoError(t, err)
	samples, err := dist.StratifiedSample(prior, 25)
	require.NoError(t, err)
	res, err := New().Run(samples, lectureHall())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "voi.csv")
	require.NoError(t, WriteLedgerCSV(path, res.Ledger))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 26) // header + one row per sample
	assert.True(t, strings.HasPrefix(lines[0], "index,occupancy,prior_action"))
}
