package analysis

import "github.com/rumixist/erken-deprem-ikazi/internal/domain"

// Rate classification labels. ClassificationInsufficient marks runs where
// the anomaly test could not be evaluated, which callers must distinguish
// from a normal-range result.
const (
	ClassificationIncrease     = "significant increase"
	ClassificationDecrease     = "significant decrease"
	ClassificationNormal       = "normal range"
	ClassificationInsufficient = "insufficient data"
)

// Magnitude distribution comments.
const (
	CommentStrongActivity   = "strong activity"
	CommentModerateActivity = "moderate activity"
	CommentNoActivity       = "no notable activity"
)

// Per-window b-value statuses.
const (
	BValueOK           = "ok"
	BValueInsufficient = "insufficient data"
	BValueDegenerate   = "mc estimation degenerate"
)

// b-value trend labels.
const (
	TrendLower        = "lower than long-term"
	TrendHigher       = "higher than long-term"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient data"
)

// RateSummary reports event counts over the nested windows, long-term
// baselines, and the z-score anomaly test. Pointer fields are nil when the
// value could not be computed.
type RateSummary struct {
	Count6h  int `json:"count_6h"`
	Count24h int `json:"count_24h"`
	Count7d  int `json:"count_7d"`
	Count30d int `json:"count_30d"`

	AvgDaily30d  float64 `json:"avg_daily_30d"`
	AvgHourly30d float64 `json:"avg_hourly_30d"`

	Ratio6h  *float64 `json:"ratio_6h,omitempty"`
	Ratio24h *float64 `json:"ratio_24h,omitempty"`

	MeanDaily  *float64 `json:"mean_daily,omitempty"`
	StdevDaily *float64 `json:"stdev_daily,omitempty"`
	ZScore24h  *float64 `json:"z_score_24h,omitempty"`

	Classification string `json:"classification"`
}

// ClusterSummary describes one maximal connected component of the 24h window
// under the chaining distance threshold.
type ClusterSummary struct {
	EventCount        int                     `json:"event_count"`
	Centroid          domain.Geo              `json:"centroid"`
	MaxMagnitudeEvent *domain.EarthquakeEvent `json:"max_magnitude_event,omitempty"`
}

// MagnitudeBin counts events with a measured magnitude at or above Threshold.
type MagnitudeBin struct {
	Threshold float64 `json:"threshold"`
	Count     int     `json:"count"`
}

// MagnitudeSummary reports the threshold ladder per window. The 7d and 30d
// windows report the reduced ladder (≥3.0 only).
type MagnitudeSummary struct {
	Window6h  []MagnitudeBin `json:"window_6h"`
	Window24h []MagnitudeBin `json:"window_24h"`
	Window7d  []MagnitudeBin `json:"window_7d"`
	Window30d []MagnitudeBin `json:"window_30d"`
	Comment   string         `json:"comment"`
}

// BValueWindow is the Gutenberg-Richter estimate for one window. BValue and
// Mc are nil when not computable; Status explains why.
type BValueWindow struct {
	BValue     *float64 `json:"b_value,omitempty"`
	Mc         *float64 `json:"mc,omitempty"`
	EventCount int      `json:"event_count"`
	Status     string   `json:"status"`
}

// BValueSummary holds the per-window estimates and the 7d-vs-30d trend.
type BValueSummary struct {
	Window7d  BValueWindow `json:"window_7d"`
	Window30d BValueWindow `json:"window_30d"`
	Window90d BValueWindow `json:"window_90d"`
	Trend     string       `json:"trend"`
}

// Result is the aggregate analysis document. Field names and nesting match
// the persisted form consumed by the presentation front end.
type Result struct {
	SeismicRate           RateSummary      `json:"seismic_rate"`
	Clustering            []ClusterSummary `json:"clustering"`
	MagnitudeDistribution MagnitudeSummary `json:"magnitude_distribution"`
	BValue                BValueSummary    `json:"b_value"`
	LastUpdated           string           `json:"last_updated"`
}
