package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
	"github.com/wandur-labs/wandur-analytics/pkg/models/store"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

const (
	historyDays = 30

	// Threshold rules for the data-driven shortlist.
	lowDwellMinutes   = 10.0
	lowConversionRate = 20.0
	lowAvgPurchase    = 50.0

	minSelected = 3
	maxSelected = 5

	minImpactScore = 6
	maxImpactScore = 10

	fallbackStoreName = "your store"
)

// Selector produces an ordered shortlist of recommendations for a store.
// Selection is stateless: every call re-fetches the trailing 30 days of
// history and recomputes from scratch.
type Selector interface {
	Recommendations(ctx context.Context, storeID string) ([]domain.Recommendation, error)
	Impact(recommendationID string) domain.RecommendationImpact
}

type selector struct {
	store airtable.Store
	rng   *rand.Rand
	now   func() time.Time
}

func NewSelector(st airtable.Store) Selector {
	return &selector{
		store: st,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

func (s *selector) Recommendations(ctx context.Context, storeID string) ([]domain.Recommendation, error) {
	storeName := fallbackStoreName
	storeRow, err := s.store.StoreByID(ctx, storeID)
	switch {
	case err == nil && storeRow.Name != "":
		storeName = storeRow.Name
	case err != nil && !errors.Is(err, airtable.ErrNotFound):
		return nil, fmt.Errorf("failed to resolve store %q: %w", storeID, err)
	}

	end := s.now()
	q := airtable.Query{
		StoreID:   storeID,
		StartDate: end.AddDate(0, 0, -historyDays).Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}

	visits, err := s.store.Visits(ctx, q)
	if err != nil {
		return nil, err
	}
	purchases, err := s.store.Purchases(ctx, q)
	if err != nil {
		return nil, err
	}

	target := s.rng.Intn(maxSelected-minSelected+1) + minSelected

	var selected []template
	if len(visits) > 0 && len(purchases) > 0 {
		selected = s.selectDataDriven(visits, purchases, target)
	} else {
		selected = s.sample(target)
	}

	out := make([]domain.Recommendation, 0, len(selected))
	for _, tpl := range selected {
		rec := tpl.render(storeName)
		rec.ImpactScore = s.rng.Intn(maxImpactScore-minImpactScore+1) + minImpactScore
		out = append(out, rec)
	}
	return out, nil
}

// selectDataDriven shortlists one item per triggered threshold rule, then
// fills the remaining slots with random picks from categories not used
// yet. Once every category is taken, repeats are allowed.
func (s *selector) selectDataDriven(
	visits []store.VisitRow,
	purchases []store.PurchaseRow,
	target int,
) []template {
	var totalDuration int
	converted := 0
	for _, v := range visits {
		totalDuration += v.Duration
		if v.Converted {
			converted++
		}
	}
	avgDwell := float64(totalDuration) / float64(len(visits))
	conversionRate := float64(converted) / float64(len(visits)) * 100

	var totalAmount float64
	for _, p := range purchases {
		totalAmount += p.Amount
	}
	avgPurchase := totalAmount / float64(len(purchases))

	var selected []template
	if avgDwell < lowDwellMinutes {
		selected = append(selected, s.pickByCategory(domain.CategoryEngagement))
	}
	if conversionRate < lowConversionRate {
		selected = append(selected, s.pickByCategory(domain.CategoryConversion))
	}
	if avgPurchase < lowAvgPurchase {
		selected = append(selected, s.pickByCategory(domain.CategoryUpsell))
	}

	for len(selected) < target {
		used := make(map[domain.RecommendationCategory]bool, len(selected))
		for _, tpl := range selected {
			used[tpl.Category] = true
		}

		var available []template
		for _, tpl := range catalog {
			if !used[tpl.Category] {
				available = append(available, tpl)
			}
		}
		if len(available) == 0 {
			available = catalog
		}
		selected = append(selected, available[s.rng.Intn(len(available))])
	}
	return selected
}

func (s *selector) pickByCategory(category domain.RecommendationCategory) template {
	var candidates []template
	for _, tpl := range catalog {
		if tpl.Category == category {
			candidates = append(candidates, tpl)
		}
	}
	if len(candidates) == 0 {
		candidates = catalog
	}
	return candidates[s.rng.Intn(len(candidates))]
}

// sample picks n templates uniformly at random without replacement.
func (s *selector) sample(n int) []template {
	if n > len(catalog) {
		n = len(catalog)
	}
	perm := s.rng.Perm(len(catalog))
	picked := make([]template, 0, n)
	for _, i := range perm[:n] {
		picked = append(picked, catalog[i])
	}
	return picked
}

var difficulties = []string{"Low", "Medium", "High"}

// Impact returns a rough placeholder projection for a recommendation.
func (s *selector) Impact(_ string) domain.RecommendationImpact {
	return domain.RecommendationImpact{
		RevenueIncrease:          fmt.Sprintf("%d%%", s.rng.Intn(21)+5),
		CustomerSatisfaction:     fmt.Sprintf("+%d points", s.rng.Intn(11)+5),
		ImplementationDifficulty: difficulties[s.rng.Intn(len(difficulties))],
		ExpectedTimeframe:        fmt.Sprintf("%d months", s.rng.Intn(6)+1),
	}
}
