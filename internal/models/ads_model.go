package models

// AdsMetrics holds aggregated account-level insight numbers for one timeframe,
// plus percentage change against the previous period of equal length.
type AdsMetrics struct {
	Spend             float64 `json:"spend"`
	Impressions       int64   `json:"impressions"`
	Clicks            int64   `json:"clicks"`
	CTR               float64 `json:"ctr"`
	CPC               float64 `json:"cpc"`
	CPM               float64 `json:"cpm"`
	SpendChange       float64 `json:"spend_change"`
	ImpressionsChange float64 `json:"impressions_change"`
	ClicksChange      float64 `json:"clicks_change"`
}

type AdsOverview struct {
	Metrics        AdsMetrics `json:"metrics"`
	TodaySpend     float64    `json:"today_spend"`
	ScheduledPosts int        `json:"scheduled_posts"`
}

type Campaign struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Objective   string  `json:"objective"`
	Status      string  `json:"status"`
	DailyBudget string  `json:"daily_budget,omitempty"`
	Spend       float64 `json:"spend"`
	CTR         float64 `json:"ctr"`
}

type CampaignDetail struct {
	Campaign
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CPC         float64 `json:"cpc"`
	CPM         float64 `json:"cpm"`
}

// Recommendation is one heuristic suggestion derived from campaign state and
// recent account insights. Action names the operation the frontend can trigger.
type Recommendation struct {
	ID          string              `json:"id"`
	Icon        string              `json:"icon"`
	Priority    string              `json:"priority"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Action      string              `json:"action"`
	Data        *RecommendationData `json:"data,omitempty"`
}

type RecommendationData struct {
	Campaigns []string `json:"campaigns"`
}

type RecommendationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AdCreative struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

type Ad struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Creative    AdCreative `json:"creative"`
	Spend       float64    `json:"spend"`
	Clicks      int64      `json:"clicks"`
	Impressions int64      `json:"impressions"`
	CTR         float64    `json:"ctr"`
	CPC         float64    `json:"cpc"`
}
