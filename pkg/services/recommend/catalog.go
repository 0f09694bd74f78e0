package recommend

import (
	"strings"

	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
)

// storePlaceholder is substituted with the store name when a template is
// rendered.
const storePlaceholder = "{store}"

type template struct {
	Title       string
	Description string
	Category    domain.RecommendationCategory
}

func (t template) render(storeName string) domain.Recommendation {
	return domain.Recommendation{
		Title:       t.Title,
		Description: strings.ReplaceAll(t.Description, storePlaceholder, storeName),
		Category:    t.Category,
	}
}

// catalog holds the full set of recommendation templates, 16 across the
// six categories.
var catalog = []template{
	{
		Title: "Optimize Store Layout",
		Description: "Analysis shows customers spend less time in the north section of {store}. " +
			"Consider rearranging displays or adding attention-grabbing elements.",
		Category: domain.CategoryEngagement,
	},
	{
		Title: "Interactive Product Displays",
		Description: "Adding interactive elements to key product displays could increase engagement " +
			"time by up to 40% based on industry benchmarks.",
		Category: domain.CategoryEngagement,
	},
	{
		Title: "Staff Engagement Training",
		Description: "Customer interaction data suggests that personalized greetings and product " +
			"information sharing could significantly boost engagement at {store}.",
		Category: domain.CategoryEngagement,
	},
	{
		Title: "Optimize Checkout Process",
		Description: "Data indicates some customers abandon purchases at checkout. Streamlining the " +
			"process could improve conversion rates at {store}.",
		Category: domain.CategoryConversion,
	},
	{
		Title: "Strategic Product Placement",
		Description: "Moving high-interest items to areas with the highest foot traffic could " +
			"increase conversions by 15-25% at {store}.",
		Category: domain.CategoryConversion,
	},
	{
		Title: "Limited-Time Offers",
		Description: "Implementing time-sensitive promotions could create urgency and boost " +
			"conversion rates, especially during peak hours (12-2pm and 5-7pm).",
		Category: domain.CategoryConversion,
	},
	{
		Title: "Bundle Popular Items",
		Description: "Creating product bundles with your top-selling items could increase average " +
			"transaction value by 20-30%.",
		Category: domain.CategoryUpsell,
	},
	{
		Title: "Premium Product Spotlight",
		Description: "Highlighting premium products near popular items could increase their " +
			"visibility and sales potential at {store}.",
		Category: domain.CategoryUpsell,
	},
	{
		Title: "Staff Upselling Training",
		Description: "Training staff to suggest complementary products could significantly increase " +
			"average purchase value at {store}.",
		Category: domain.CategoryUpsell,
	},
	{
		Title: "Launch Loyalty Program",
		Description: "Based on repeat visitor data, implementing a loyalty program could increase " +
			"customer retention by 25-40% at {store}.",
		Category: domain.CategoryLoyalty,
	},
	{
		Title: "Personalized Offers",
		Description: "Sending personalized offers to repeat customers based on their purchase " +
			"history could significantly increase return visits.",
		Category: domain.CategoryLoyalty,
	},
	{
		Title: "Social Media Showcase",
		Description: "Creating Instagram-worthy product displays or areas could increase social " +
			"sharing and attract new customers to {store}.",
		Category: domain.CategoryMarketing,
	},
	{
		Title: "In-Mall Advertising",
		Description: "Data shows many first-time visitors discover {store} through in-mall " +
			"advertising. Increasing this presence could boost new customer acquisition.",
		Category: domain.CategoryMarketing,
	},
	{
		Title: "Targeted Geofenced Ads",
		Description: "Using the Wandur app's geofenced advertising feature to target potential " +
			"customers near {store} could increase walk-ins by up to 30%.",
		Category: domain.CategoryMarketing,
	},
	{
		Title: "Adjust Staffing Levels",
		Description: "Foot traffic analysis suggests {store} needs additional staff during peak " +
			"hours (12-2pm and 5-7pm) to maintain service quality.",
		Category: domain.CategoryOperations,
	},
	{
		Title: "Optimize Opening Hours",
		Description: "Visitor data indicates potential for increased revenue by extending hours on " +
			"weekends at {store}.",
		Category: domain.CategoryOperations,
	},
}
