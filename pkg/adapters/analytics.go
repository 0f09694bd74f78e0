package adapters

import (
	"github.com/wandur-labs/wandur-analytics/pkg/models/api"
	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
)

func MapStoreDomainToApi(s domain.Store) api.Store {
	return api.Store{
		ID:             s.ID,
		Name:           s.Name,
		Location:       s.Location,
		Type:           string(s.Type),
		GeofenceRadius: s.GeofenceRadius,
	}
}

func MapKeyMetricsDomainToApi(m domain.KeyMetrics) api.KeyMetrics {
	return api.KeyMetrics{
		Availability:   string(m.Availability),
		FootTraffic:    m.FootTraffic,
		ConversionRate: m.ConversionRate,
		AvgPurchase:    m.AvgPurchase,
	}
}

func MapTrafficDomainToApi(s domain.TrafficSeries) api.TrafficSeries {
	out := api.TrafficSeries{
		Availability: string(s.Availability),
		Points:       []api.TrafficPoint{},
	}
	for _, p := range s.Points {
		out.Points = append(out.Points, api.TrafficPoint{Date: p.Date, Visitors: p.Visitors})
	}
	return out
}

func MapSegmentsDomainToApi(d domain.SegmentDistribution) api.SegmentDistribution {
	out := api.SegmentDistribution{
		Availability: string(d.Availability),
		Segments:     []api.Segment{},
	}
	for _, s := range d.Segments {
		out.Segments = append(out.Segments, api.Segment{
			Segment:  s.Name,
			Count:    s.Count,
			AvgSpend: s.AvgSpend,
		})
	}
	return out
}

func MapHeatmapDomainToApi(h domain.Heatmap) api.Heatmap {
	return api.Heatmap{
		Availability: string(h.Availability),
		Density:      h.Density,
	}
}

func MapFunnelDomainToApi(f domain.Funnel) api.Funnel {
	out := api.Funnel{
		Availability: string(f.Availability),
		Stages:       []api.FunnelStage{},
	}
	for _, s := range f.Stages {
		out.Stages = append(out.Stages, api.FunnelStage{Stage: s.Stage, Count: s.Count})
	}
	return out
}

func MapPeakHoursDomainToApi(p domain.PeakHours) api.PeakHours {
	out := api.PeakHours{
		Availability: string(p.Availability),
		Hours:        []api.HourTraffic{},
	}
	for _, h := range p.Hours {
		out.Hours = append(out.Hours, api.HourTraffic{Hour: h.Hour, Visitors: h.Visitors})
	}
	return out
}

func MapDwellDomainToApi(d domain.DwellDistribution) api.DwellDistribution {
	out := api.DwellDistribution{
		Availability: string(d.Availability),
		Buckets:      []api.DwellBucket{},
	}
	for _, b := range d.Buckets {
		out.Buckets = append(out.Buckets, api.DwellBucket{Duration: b.Label, Count: b.Count})
	}
	return out
}

func MapRecommendationDomainToApi(r domain.Recommendation) api.Recommendation {
	return api.Recommendation{
		Title:       r.Title,
		Description: r.Description,
		Category:    string(r.Category),
		ImpactScore: r.ImpactScore,
	}
}
