package simulator

import (
	"math"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

// StepResult is returned by Battery.Step for each interval.
type StepResult struct {
	SoCBeforeKWh  float64
	ChargedKWh    float64 // energy drawn from the surplus, before losses
	DischargedKWh float64 // energy delivered to the load
	GridKWh       float64 // positive = feed-in, negative = import
}

// Battery simulates a home storage system over 15-minute energy balances.
// The full round-trip loss is applied on charge, so stored energy is
// delivered one-to-one on discharge.
type Battery struct {
	spec model.BatterySpec

	// State
	SoCKWh float64

	// Stats
	TotalChargedKWh    float64
	TotalDischargedKWh float64
}

// NewBattery creates a battery with the given starting charge. The initial
// SoC is clamped into [0, capacity].
func NewBattery(spec model.BatterySpec, initialSoCKWh float64) *Battery {
	soc := math.Max(0, math.Min(initialSoCKWh, spec.CapacityKWh))
	return &Battery{spec: spec, SoCKWh: soc}
}

// Step processes one interval's energy balance.
// productionKWh and consumptionKWh are energies over the interval; the
// battery absorbs surplus first and covers deficit first, the grid takes
// whatever remains.
func (b *Battery) Step(productionKWh, consumptionKWh float64) StepResult {
	res := StepResult{SoCBeforeKWh: b.SoCKWh}
	balance := productionKWh - consumptionKWh

	if balance >= 0 {
		headroom := b.spec.CapacityKWh - b.SoCKWh
		charge := math.Min(balance, headroom)
		b.SoCKWh += charge * b.spec.RoundTripEfficiency
		res.ChargedKWh = charge
		res.GridKWh = balance - charge
		b.TotalChargedKWh += charge
		return res
	}

	deficit := -balance
	discharge := math.Min(deficit, b.SoCKWh)
	b.SoCKWh -= discharge
	res.DischargedKWh = discharge
	res.GridKWh = -(deficit - discharge)
	b.TotalDischargedKWh += discharge
	return res
}

// Cycles returns the equivalent full cycle count, charged energy divided by
// capacity.
func (b *Battery) Cycles() float64 {
	if b.spec.CapacityKWh <= 0 {
		return 0
	}
	return b.TotalChargedKWh / b.spec.CapacityKWh
}

// Trace holds the per-interval battery outputs of a full run.
type Trace struct {
	SoCBefore  []float64
	Charged    []float64
	Discharged []float64
	Grid       []float64
}

// Simulate runs the battery over aligned production and consumption series
// and returns the full per-interval trace.
func (b *Battery) Simulate(productionKWh, consumptionKWh []float64) Trace {
	n := len(productionKWh)
	tr := Trace{
		SoCBefore:  make([]float64, n),
		Charged:    make([]float64, n),
		Discharged: make([]float64, n),
		Grid:       make([]float64, n),
	}
	for i := 0; i < n; i++ {
		r := b.Step(productionKWh[i], consumptionKWh[i])
		tr.SoCBefore[i] = r.SoCBeforeKWh
		tr.Charged[i] = r.ChargedKWh
		tr.Discharged[i] = r.DischargedKWh
		tr.Grid[i] = r.GridKWh
	}
	return tr
}
