package calc

import (
	"math"
	"sort"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// DefaultTurnoverHours is the time to circulate the whole pool volume once
const DefaultTurnoverHours = 8.0

// PumpSelection is the outcome of matching a pump against the requirement.
// Found is false when no catalog pump meets both flow and head; the caller
// reports that as a recommendation gap, not an error.
type PumpSelection struct {
	Found        bool                    `json:"found"`
	Pump         *domain.EquipmentPreset `json:"pump,omitempty"`
	RequiredFlow float64                 `json:"requiredFlow"`
	RequiredHead float64                 `json:"requiredHead"`
	Source       string                  `json:"source,omitempty"` // catalog, additional or configured
	Reason       string                  `json:"reason,omitempty"`
}

// FilterSelection is the outcome of matching a filter against the pool
type FilterSelection struct {
	Found        bool                    `json:"found"`
	Filter       *domain.EquipmentPreset `json:"filter,omitempty"`
	RequiredFlow float64                 `json:"requiredFlow"`
	PoolVolume   float64                 `json:"poolVolume"`
	Fallback     bool                    `json:"fallback,omitempty"`
	Reason       string                  `json:"reason,omitempty"`
}

// Pump selection sources
const (
	SourceCatalog    = "catalog"
	SourceAdditional = "additional"
	SourceConfigured = "configured"
)

// RequiredFlowRate returns the circulation flow in m³/h needed to turn the
// pool volume over in the given hours.
func RequiredFlowRate(volume, turnoverHours float64) (float64, error) {
	if err := requirePositive("volume", volume); err != nil {
		return 0, err
	}
	if err := requirePositive("turnoverHours", turnoverHours); err != nil {
		return 0, err
	}
	return volume / turnoverHours, nil
}

// PumpMeets reports whether a pump covers both flow and head
func PumpMeets(p *domain.EquipmentPreset, requiredFlow, requiredHead float64) bool {
	return p != nil && p.FlowRate >= requiredFlow && p.MaxHead >= requiredHead
}

// SelectPump picks the cheapest active catalog pump whose rated flow and head
// both cover the requirement. Equal prices go to the least oversized pump.
func SelectPump(requiredFlow, requiredHead float64, catalog []domain.EquipmentPreset) (PumpSelection, error) {
	if err := requirePositive("requiredFlow", requiredFlow); err != nil {
		return PumpSelection{}, err
	}
	if err := requirePositive("requiredHead", requiredHead); err != nil {
		return PumpSelection{}, err
	}

	sel := PumpSelection{RequiredFlow: requiredFlow, RequiredHead: requiredHead}

	var candidates []domain.EquipmentPreset
	rated := 0
	for _, e := range catalog {
		if !e.IsActive || e.Type != domain.TypePump || e.FlowRate <= 0 || e.MaxHead <= 0 {
			continue
		}
		rated++
		if PumpMeets(&e, requiredFlow, requiredHead) {
			candidates = append(candidates, e)
		}
	}

	if len(candidates) == 0 {
		if rated == 0 {
			sel.Reason = "catalog has no active pumps with rated flow and head"
		} else {
			sel.Reason = "no catalog pump delivers " + fmt2(requiredFlow) + " m³/h at " + fmt2(requiredHead) + " m"
		}
		return sel, nil
	}

	oversize := func(p domain.EquipmentPreset) float64 {
		return p.FlowRate/requiredFlow + p.MaxHead/requiredHead
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].PricePerUnit != candidates[j].PricePerUnit {
			return candidates[i].PricePerUnit < candidates[j].PricePerUnit
		}
		return oversize(candidates[i]) < oversize(candidates[j])
	})

	best := candidates[0]
	sel.Found = true
	sel.Pump = &best
	sel.Source = SourceCatalog
	return sel, nil
}

// SelectFilter picks the cheapest active filter that handles the flow, or,
// for filters without a rated flow, whose volume range contains the pool.
// When nothing qualifies, the smallest volume-rated filter above the pool is
// returned as a fallback. A filter with a rated flow below the requirement is
// never returned.
func SelectFilter(requiredFlow, poolVolume float64, catalog []domain.EquipmentPreset) (FilterSelection, error) {
	if err := requirePositive("requiredFlow", requiredFlow); err != nil {
		return FilterSelection{}, err
	}
	if err := requirePositive("volume", poolVolume); err != nil {
		return FilterSelection{}, err
	}

	sel := FilterSelection{RequiredFlow: requiredFlow, PoolVolume: poolVolume}
	litres := poolVolume * 1000

	var filters, candidates []domain.EquipmentPreset
	for _, e := range catalog {
		if !e.IsActive || e.Type != domain.TypeFilter {
			continue
		}
		filters = append(filters, e)
		switch {
		case e.FlowRate > 0:
			if e.FlowRate >= requiredFlow {
				candidates = append(candidates, e)
			}
		case e.MaxPoolVolume > 0:
			if litres >= e.MinPoolVolume && litres <= e.MaxPoolVolume {
				candidates = append(candidates, e)
			}
		}
	}

	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].PricePerUnit < candidates[j].PricePerUnit
		})
		best := candidates[0]
		sel.Found = true
		sel.Filter = &best
		return sel, nil
	}

	var fallback *domain.EquipmentPreset
	minAbove := math.Inf(1)
	for i := range filters {
		f := filters[i]
		if f.FlowRate > 0 {
			continue
		}
		if f.MinPoolVolume > litres && f.MinPoolVolume < minAbove {
			minAbove = f.MinPoolVolume
			fallback = &filters[i]
		}
	}
	if fallback != nil {
		best := *fallback
		sel.Found = true
		sel.Fallback = true
		sel.Filter = &best
		sel.Reason = "no filter rated for this pool; using the smallest filter above its volume"
		return sel, nil
	}

	if len(filters) == 0 {
		sel.Reason = "catalog has no active filters"
	} else {
		sel.Reason = "no catalog filter handles " + fmt2(requiredFlow) + " m³/h"
	}
	return sel, nil
}
