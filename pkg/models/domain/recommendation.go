package domain

type RecommendationCategory string

const (
	CategoryEngagement RecommendationCategory = "engagement"
	CategoryConversion RecommendationCategory = "conversion"
	CategoryUpsell     RecommendationCategory = "upsell"
	CategoryLoyalty    RecommendationCategory = "loyalty"
	CategoryMarketing  RecommendationCategory = "marketing"
	CategoryOperations RecommendationCategory = "operations"
)

type Recommendation struct {
	Title       string
	Description string
	Category    RecommendationCategory
	ImpactScore int // 1..10
}

// RecommendationImpact is a rough projection of what acting on a
// recommendation could yield.
type RecommendationImpact struct {
	RevenueIncrease          string
	CustomerSatisfaction     string
	ImplementationDifficulty string
	ExpectedTimeframe        string
}
