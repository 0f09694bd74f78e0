package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
)

// Reporter renders analytics reports to the console in plain text.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.AnalyticsReport) error {
	tmpl := `
{{.StoreName}} - analytics report
Period: {{.Period.Start}} to {{.Period.End}}

=== Key Metrics ({{.Metrics.Availability}}) ===
Foot traffic: {{.Metrics.FootTraffic}}
Conversion rate: {{printf "%.1f" .Metrics.ConversionRate}}%
Average purchase: {{printf "%.2f" .Metrics.AvgPurchase}}

=== Conversion Funnel ({{.Funnel.Availability}}) ===
{{range .Funnel.Stages}}{{printf "%-18s %d" .Stage .Count}}
{{end}}
=== Peak Hours ({{.PeakHours.Availability}}) ===
{{range .PeakHours.Hours}}{{printf "%02d:00  %d" .Hour .Visitors}}
{{end}}
=== Dwell Time ({{.Dwell.Availability}}) ===
{{range .Dwell.Buckets}}{{printf "%-12s %d" .Label .Count}}
{{end}}`

	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
