package payroll

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

func normalizeLocality(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// AllocateLocalities splits totalCents across localities using
// largest-remainder rounding. Explicit fractions for keys outside localities
// are ignored. Explicit fractions win; fractions that sum above
// one are scaled down and fractions below one allocate only their share.
// With no usable explicit fraction the total is split evenly across
// localities. Leftover cents go to the largest fractional remainders, ties
// broken by key ascending.
func AllocateLocalities(totalCents int64, localities []string, fractions map[string]float64) map[string]int64 {
	referenced := make(map[string]bool, len(localities))
	for _, l := range localities {
		referenced[normalizeLocality(l)] = true
	}
	weights := make(map[string]decimal.Decimal)
	for key, f := range fractions {
		k := normalizeLocality(key)
		if f <= 0 || !referenced[k] {
			continue
		}
		weights[k] = weights[k].Add(decimal.NewFromFloat(f))
	}

	one := decimal.NewFromInt(1)
	denominator := one
	target := totalCents
	if len(weights) == 0 {
		for _, l := range localities {
			weights[normalizeLocality(l)] = one
		}
		if len(weights) == 0 {
			return map[string]int64{}
		}
		denominator = decimal.NewFromInt(int64(len(weights)))
	} else {
		sum := decimal.Zero
		for _, w := range weights {
			sum = sum.Add(w)
		}
		if sum.GreaterThan(one) {
			denominator = sum
		} else {
			target = decimal.NewFromInt(totalCents).Mul(sum).Truncate(0).IntPart()
		}
	}

	type share struct {
		key       string
		floor     int64
		remainder decimal.Decimal
	}
	shares := make([]share, 0, len(weights))
	var allocated int64
	total := decimal.NewFromInt(totalCents)
	for key, w := range weights {
		exact := total.Mul(w).Div(denominator)
		floor := exact.Floor()
		shares = append(shares, share{key: key, floor: floor.IntPart(), remainder: exact.Sub(floor)})
		allocated += floor.IntPart()
	}
	sort.Slice(shares, func(i, j int) bool {
		if c := shares[i].remainder.Cmp(shares[j].remainder); c != 0 {
			return c > 0
		}
		return shares[i].key < shares[j].key
	})

	out := make(map[string]int64, len(shares))
	for _, s := range shares {
		out[s.key] = s.floor
	}
	for i := 0; target-allocated > 0 && len(shares) > 0; i++ {
		out[shares[i%len(shares)].key]++
		allocated++
	}
	return out
}
