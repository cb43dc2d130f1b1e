package simulator

import (
	"math"

	"github.com/annalea868/adrex-solar-calculation/internal/model"
)

// CategoryEnergy holds one value per consumption category.
type CategoryEnergy [model.NumCategories]float64

// Sum returns the aggregate over all categories.
func (c CategoryEnergy) Sum() float64 {
	var total float64
	for _, v := range c {
		total += v
	}
	return total
}

// Attributor splits an interval's grid exchange into per-category
// self-consumed energy.
type Attributor interface {
	Attribute(gridKWh float64, consumption CategoryEnergy) CategoryEnergy
}

// Proportional attributes grid import to categories in proportion to their
// share of the interval's aggregate consumption. With feed-in or a balanced
// interval every category is fully self-supplied.
type Proportional struct{}

// Attribute returns the self-consumed energy per category for one interval.
// gridKWh is positive for feed-in and negative for import.
func (Proportional) Attribute(gridKWh float64, consumption CategoryEnergy) CategoryEnergy {
	if gridKWh >= 0 {
		return consumption
	}
	aggregate := consumption.Sum()
	if aggregate == 0 {
		return CategoryEnergy{}
	}
	importKWh := -gridKWh
	var self CategoryEnergy
	for c, cons := range consumption {
		catImport := importKWh * cons / aggregate
		self[c] = math.Max(0, cons-catImport)
	}
	return self
}

// AutarkyCeilings caps the reported degree of self-sufficiency per category.
// The caps reflect what the underlying standard load profiles can plausibly
// support; a zero entry means uncapped.
type AutarkyCeilings struct {
	PerCategory CategoryEnergy
	Total       float64
}

// DefaultAutarkyCeilings returns the standard reporting caps: 80% for
// household and overall, 55% for heat pumps, uncapped e-car charging.
func DefaultAutarkyCeilings() AutarkyCeilings {
	var per CategoryEnergy
	per[model.Household] = 0.80
	per[model.HeatPump] = 0.55
	return AutarkyCeilings{PerCategory: per, Total: 0.80}
}

// ClampRate caps a rate at the given ceiling. A ceiling of zero means
// uncapped.
func ClampRate(rate, ceiling float64) float64 {
	if ceiling > 0 && rate > ceiling {
		return ceiling
	}
	return rate
}

// Totals accumulates run-level energy sums across all intervals.
type Totals struct {
	ProductionKWh  float64
	ConsumptionKWh CategoryEnergy
	SelfKWh        CategoryEnergy
	FeedInKWh      float64
	ImportKWh      float64
}

// Accumulate adds one interval's contribution.
func (t *Totals) Accumulate(productionKWh, gridKWh float64, consumption, self CategoryEnergy) {
	t.ProductionKWh += productionKWh
	for c := range consumption {
		t.ConsumptionKWh[c] += consumption[c]
		t.SelfKWh[c] += self[c]
	}
	if gridKWh >= 0 {
		t.FeedInKWh += gridKWh
	} else {
		t.ImportKWh += -gridKWh
	}
}

// SelfConsumptionRate is the share of production consumed on site.
func (t Totals) SelfConsumptionRate() float64 {
	if t.ProductionKWh == 0 {
		return 0
	}
	return t.SelfKWh.Sum() / t.ProductionKWh
}

// AutarkyRate is one category's self-supplied share of its consumption,
// clamped to the reporting ceiling.
func (t Totals) AutarkyRate(c model.ConsumptionCategory, ceilings AutarkyCeilings) float64 {
	cons := t.ConsumptionKWh[c]
	if cons == 0 {
		return 0
	}
	return ClampRate(t.SelfKWh[c]/cons, ceilings.PerCategory[c])
}

// TotalAutarkyRate is the overall self-supplied share across all categories,
// clamped to the total reporting ceiling.
func (t Totals) TotalAutarkyRate(ceilings AutarkyCeilings) float64 {
	cons := t.ConsumptionKWh.Sum()
	if cons == 0 {
		return 0
	}
	return ClampRate(t.SelfKWh.Sum()/cons, ceilings.Total)
}
