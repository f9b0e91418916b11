// Package fuellog contains fuel log use cases and the fuel economy derivation.
package fuellog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// costPerKMPrecision is the number of decimal places for derived
// cost-per-kilometer values.
const costPerKMPrecision = 3

// DeriveEconomy computes distance-since-previous and cost-per-kilometer for
// a set of fuel logs. The input may arrive in any order; it is sorted by
// fill date ascending (creation time, then ID, as tiebreakers) before the
// derivation walk.
//
// The first record in sorted order has no derived values. A record whose
// odometer reading does not exceed the previous one (meter reset,
// correction, out-of-order entry) also has none; the walk never produces a
// negative distance or divides by zero.
//
// The result is oldest first. Callers that want newest-first presentation
// pass newestFirst.
func DeriveEconomy(logs []*entity.FuelLog, newestFirst bool) []*entity.FuelLogWithEconomy {
	sorted := make([]*entity.FuelLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return strings.Compare(sorted[i].ID.String(), sorted[j].ID.String()) < 0
	})

	result := make([]*entity.FuelLogWithEconomy, len(sorted))
	var prev *entity.FuelLog
	for i, log := range sorted {
		item := &entity.FuelLogWithEconomy{FuelLog: log}

		if prev != nil && log.OdometerKM > prev.OdometerKM {
			distance := log.OdometerKM - prev.OdometerKM
			costPerKM := log.TotalCost.
				Div(decimal.NewFromInt(distance)).
				Round(costPerKMPrecision)
			item.DistanceKM = &distance
			item.CostPerKM = &costPerKM
		}

		result[i] = item
		prev = log
	}

	if newestFirst {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}

	return result
}
