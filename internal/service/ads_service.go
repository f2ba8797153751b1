package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/fofostudio/marketing-api/configs"
	"github.com/fofostudio/marketing-api/internal/models"
)

type AdsService interface {
	Overview(ctx context.Context, timeframe string) (*models.AdsOverview, error)
	Campaigns(ctx context.Context) ([]models.Campaign, error)
	CampaignDetail(ctx context.Context, campaignID string) (*models.CampaignDetail, []models.Ad, error)
	Recommendations(ctx context.Context) ([]models.Recommendation, error)
	ExecuteRecommendation(ctx context.Context, recommendationID string) (*models.RecommendationResult, error)
	PauseAllCampaigns(ctx context.Context) (int, error)
}

type adsService struct {
	cfg    config.Config
	client *http.Client
}

func NewAdsService(cfg config.Config) AdsService {
	return &adsService{cfg: cfg, client: http.DefaultClient}
}

func (s *adsService) configured() bool {
	return s.cfg.Meta.AccessToken != "" && s.cfg.Meta.AdAccountID != ""
}

type insightRow struct {
	Spend       string `json:"spend"`
	Impressions string `json:"impressions"`
	Clicks      string `json:"clicks"`
	CTR         string `json:"ctr"`
	CPC         string `json:"cpc"`
	CPM         string `json:"cpm"`
}

type insightsResponse struct {
	Data []insightRow `json:"data"`
	Err  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Overview aggregates account insights for the timeframe and compares them
// against the preceding period of equal length. An unconfigured Meta
// integration yields zeroed metrics rather than an error, so the dashboard
// still renders.
func (s *adsService) Overview(ctx context.Context, timeframe string) (*models.AdsOverview, error) {
	if !s.configured() {
		return &models.AdsOverview{}, nil
	}

	now := time.Now()
	until := now.Format("2006-01-02")
	var since string

	switch timeframe {
	case "today":
		since = until
	case "30d":
		since = now.AddDate(0, 0, -30).Format("2006-01-02")
	default: // 7d
		since = now.AddDate(0, 0, -7).Format("2006-01-02")
	}

	current, err := s.accountInsights(ctx, since, until)
	if err != nil {
		return nil, err
	}

	// previous period of the same length, ending where this one starts
	sinceT, _ := time.Parse("2006-01-02", since)
	untilT, _ := time.Parse("2006-01-02", until)
	span := untilT.Sub(sinceT)
	prevUntil := sinceT.AddDate(0, 0, -1)
	prevSince := prevUntil.Add(-span)

	previous, err := s.accountInsights(ctx, prevSince.Format("2006-01-02"), prevUntil.Format("2006-01-02"))
	if err != nil {
		previous = insightRow{}
	}

	today, err := s.accountInsights(ctx, until, until)
	if err != nil {
		today = insightRow{}
	}

	metrics := models.AdsMetrics{
		Spend:       parseFloat(current.Spend),
		Impressions: parseInt(current.Impressions),
		Clicks:      parseInt(current.Clicks),
		CTR:         parseFloat(current.CTR),
		CPC:         parseFloat(current.CPC),
		CPM:         parseFloat(current.CPM),
	}
	metrics.SpendChange = percentChange(parseFloat(previous.Spend), metrics.Spend)
	metrics.ImpressionsChange = percentChange(float64(parseInt(previous.Impressions)), float64(metrics.Impressions))
	metrics.ClicksChange = percentChange(float64(parseInt(previous.Clicks)), float64(metrics.Clicks))

	return &models.AdsOverview{
		Metrics:    metrics,
		TodaySpend: parseFloat(today.Spend),
	}, nil
}

func (s *adsService) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	if !s.configured() {
		return []models.Campaign{}, nil
	}

	endpoint := fmt.Sprintf("%s/%s/campaigns?%s", graphAPIBase, s.cfg.Meta.AdAccountID, url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"fields":       {"id,name,objective,status,daily_budget"},
	}.Encode())

	var resp struct {
		Data []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Objective   string `json:"objective"`
			Status      string `json:"status"`
			DailyBudget string `json:"daily_budget"`
		} `json:"data"`
	}
	if err := s.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	campaigns := make([]models.Campaign, 0, len(resp.Data))
	for _, c := range resp.Data {
		insights, err := s.entityInsights(ctx, c.ID, "spend,ctr")
		if err != nil {
			insights = insightRow{}
		}
		campaigns = append(campaigns, models.Campaign{
			ID:          c.ID,
			Name:        c.Name,
			Objective:   c.Objective,
			Status:      c.Status,
			DailyBudget: c.DailyBudget,
			Spend:       parseFloat(insights.Spend),
			CTR:         parseFloat(insights.CTR),
		})
	}
	return campaigns, nil
}

func (s *adsService) CampaignDetail(ctx context.Context, campaignID string) (*models.CampaignDetail, []models.Ad, error) {
	if !s.configured() {
		return nil, nil, errors.New("meta access token not configured")
	}

	endpoint := fmt.Sprintf("%s/%s?%s", graphAPIBase, campaignID, url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"fields":       {"name,objective,status,daily_budget"},
	}.Encode())

	var campaign struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Objective   string `json:"objective"`
		Status      string `json:"status"`
		DailyBudget string `json:"daily_budget"`
	}
	if err := s.get(ctx, endpoint, &campaign); err != nil {
		return nil, nil, err
	}

	insights, err := s.entityInsights(ctx, campaignID, "spend,impressions,clicks,ctr,cpc,cpm")
	if err != nil {
		insights = insightRow{}
	}

	detail := &models.CampaignDetail{
		Campaign: models.Campaign{
			ID:          campaign.ID,
			Name:        campaign.Name,
			Objective:   campaign.Objective,
			Status:      campaign.Status,
			DailyBudget: campaign.DailyBudget,
			Spend:       parseFloat(insights.Spend),
			CTR:         parseFloat(insights.CTR),
		},
		Impressions: parseInt(insights.Impressions),
		Clicks:      parseInt(insights.Clicks),
		CPC:         parseFloat(insights.CPC),
		CPM:         parseFloat(insights.CPM),
	}

	ads, err := s.campaignAds(ctx, campaignID)
	if err != nil {
		return nil, nil, err
	}

	return detail, ads, nil
}

func (s *adsService) campaignAds(ctx context.Context, campaignID string) ([]models.Ad, error) {
	endpoint := fmt.Sprintf("%s/%s/ads?%s", graphAPIBase, campaignID, url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"fields":       {"id,name,status,creative{title,body,image_url,thumbnail_url},insights{spend,clicks,impressions,ctr,cpc}"},
	}.Encode())

	var resp struct {
		Data []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Status   string `json:"status"`
			Creative struct {
				Title        string `json:"title"`
				Body         string `json:"body"`
				ImageURL     string `json:"image_url"`
				ThumbnailURL string `json:"thumbnail_url"`
			} `json:"creative"`
			Insights struct {
				Data []insightRow `json:"data"`
			} `json:"insights"`
		} `json:"data"`
	}
	if err := s.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	ads := make([]models.Ad, 0, len(resp.Data))
	for _, ad := range resp.Data {
		var insights insightRow
		if len(ad.Insights.Data) > 0 {
			insights = ad.Insights.Data[0]
		}

		imageURL := ad.Creative.ImageURL
		if imageURL == "" {
			imageURL = ad.Creative.ThumbnailURL
		}

		ads = append(ads, models.Ad{
			ID:     ad.ID,
			Name:   ad.Name,
			Status: ad.Status,
			Creative: models.AdCreative{
				Title:    ad.Creative.Title,
				Body:     ad.Creative.Body,
				ImageURL: imageURL,
			},
			Spend:       parseFloat(insights.Spend),
			Clicks:      parseInt(insights.Clicks),
			Impressions: parseInt(insights.Impressions),
			CTR:         parseFloat(insights.CTR),
			CPC:         parseFloat(insights.CPC),
		})
	}
	return ads, nil
}

type campaignInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	DailyBudget string `json:"daily_budget"`
}

// Budgets below this daily amount (in COP minor units) trigger the low-budget
// recommendation.
const minDailyBudget = 50000

// Recommendations derives heuristic suggestions from campaign state and the
// last week of account insights. The insights part is best-effort: if the
// call fails, the campaign-based suggestions still go out.
func (s *adsService) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	if !s.configured() {
		return []models.Recommendation{}, nil
	}

	campaigns, err := s.listCampaignInfo(ctx)
	if err != nil {
		return nil, err
	}
	recs := campaignRecommendations(campaigns)

	now := time.Now()
	week, err := s.accountInsights(ctx, now.AddDate(0, 0, -7).Format("2006-01-02"), now.Format("2006-01-02"))
	if err != nil {
		slog.Error("insights skipped for recommendations", "error", err)
	} else if week != (insightRow{}) {
		recs = append(recs, insightRecommendations(week)...)
	}

	recs = append(recs, models.Recommendation{
		ID:          "general-checkup",
		Icon:        "🔍",
		Priority:    "low",
		Title:       "Auditoría mensual recomendada",
		Description: "Revisa tus campañas mensualmente para optimizar rendimiento y detectar oportunidades.",
		Action:      "schedule_audit",
	})

	return recs, nil
}

func campaignRecommendations(campaigns []campaignInfo) []models.Recommendation {
	var active, paused int
	var lowBudget []string

	for _, c := range campaigns {
		switch c.Status {
		case "ACTIVE":
			active++
			if c.DailyBudget != "" && parseInt(c.DailyBudget) < minDailyBudget {
				lowBudget = append(lowBudget, c.ID)
			}
		case "PAUSED":
			paused++
		}
	}

	recs := []models.Recommendation{}

	if paused > 3 {
		recs = append(recs, models.Recommendation{
			ID:          "cleanup-paused",
			Icon:        "🧹",
			Priority:    "medium",
			Title:       "Limpieza de campañas pausadas",
			Description: fmt.Sprintf("Tienes %d campañas pausadas. Considera archivar las que ya no usarás para mantener el dashboard limpio.", paused),
			Action:      "archive_paused_campaigns",
		})
	}

	if active == 0 {
		recs = append(recs, models.Recommendation{
			ID:          "no-active",
			Icon:        "⚠️",
			Priority:    "high",
			Title:       "Sin campañas activas",
			Description: "No tienes ninguna campaña activa en este momento. Considera activar una campaña para generar resultados.",
			Action:      "prompt_activate_campaign",
		})
	}

	if len(lowBudget) > 0 {
		recs = append(recs, models.Recommendation{
			ID:          "low-budget",
			Icon:        "💰",
			Priority:    "medium",
			Title:       "Presupuesto bajo detectado",
			Description: fmt.Sprintf("%d campañas tienen presupuesto diario menor a $50k COP. Considera aumentarlo para mayor alcance.", len(lowBudget)),
			Action:      "increase_budget",
			Data:        &models.RecommendationData{Campaigns: lowBudget},
		})
	}

	return recs
}

func insightRecommendations(week insightRow) []models.Recommendation {
	var recs []models.Recommendation

	if parseFloat(week.CTR) < 0.5 {
		recs = append(recs, models.Recommendation{
			ID:          "low-ctr",
			Icon:        "📉",
			Priority:    "high",
			Title:       "CTR bajo (< 0.5%)",
			Description: "Tu CTR promedio es muy bajo. Mejora tus creativos, copy o segmentación de audiencia.",
			Action:      "review_creatives",
		})
	}

	if parseFloat(week.CPC) > 500 {
		recs = append(recs, models.Recommendation{
			ID:          "high-cpc",
			Icon:        "💸",
			Priority:    "medium",
			Title:       "CPC alto (> $500 COP)",
			Description: "Tu costo por clic está elevado. Revisa la relevancia de tus anuncios y optimiza tu segmentación.",
			Action:      "optimize_targeting",
		})
	}

	return recs
}

func (s *adsService) ExecuteRecommendation(ctx context.Context, recommendationID string) (*models.RecommendationResult, error) {
	if recommendationID == "" {
		return nil, errors.New("missing recommendation_id")
	}
	if !s.configured() {
		return nil, errors.New("meta credentials not configured")
	}

	switch recommendationID {
	case "cleanup-paused":
		return s.archivePausedCampaigns(ctx)
	case "low-budget":
		return &models.RecommendationResult{
			Success: true,
			Message: "Para ajustar presupuestos, ve a Meta Ads Manager > Campaigns > Edit Budget. Recomendamos mínimo $50k COP/día para resultados óptimos.",
		}, nil
	case "low-ctr", "high-cpc":
		return &models.RecommendationResult{
			Success: true,
			Message: "Esta recomendación requiere revisión manual. Abre Meta Ads Manager para optimizar tus anuncios.",
		}, nil
	case "general-checkup":
		return &models.RecommendationResult{
			Success: true,
			Message: "Recordatorio configurado. Revisa tus campañas mensualmente para mejores resultados.",
		}, nil
	default:
		return &models.RecommendationResult{
			Success: false,
			Message: "Recomendación no reconocida",
		}, nil
	}
}

func (s *adsService) archivePausedCampaigns(ctx context.Context) (*models.RecommendationResult, error) {
	campaigns, err := s.listCampaignInfo(ctx)
	if err != nil {
		return nil, err
	}

	var archived []string
	for _, c := range campaigns {
		if c.Status != "PAUSED" {
			continue
		}
		if err := s.setCampaignStatus(ctx, c.ID, "ARCHIVED"); err != nil {
			slog.Error("archive failed", "campaign_id", c.ID, "error", err)
			continue
		}
		archived = append(archived, c.Name)
	}

	if len(archived) == 0 {
		return &models.RecommendationResult{
			Success: true,
			Message: "No hay campañas pausadas para archivar",
		}, nil
	}
	return &models.RecommendationResult{
		Success: true,
		Message: fmt.Sprintf("%d campañas archivadas: %s", len(archived), strings.Join(archived, ", ")),
	}, nil
}

// PauseAllCampaigns is the panic button: every ACTIVE campaign gets paused.
// Returns how many were paused; per-campaign failures are logged and skipped.
func (s *adsService) PauseAllCampaigns(ctx context.Context) (int, error) {
	if !s.configured() {
		return 0, errors.New("meta credentials not configured")
	}

	campaigns, err := s.listCampaignInfo(ctx)
	if err != nil {
		return 0, err
	}

	paused := 0
	for _, c := range campaigns {
		if c.Status != "ACTIVE" {
			continue
		}
		if err := s.setCampaignStatus(ctx, c.ID, "PAUSED"); err != nil {
			slog.Error("pause failed", "campaign_id", c.ID, "error", err)
			continue
		}
		paused++
	}

	return paused, nil
}

func (s *adsService) listCampaignInfo(ctx context.Context) ([]campaignInfo, error) {
	endpoint := fmt.Sprintf("%s/%s/campaigns?%s", graphAPIBase, s.cfg.Meta.AdAccountID, url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"fields":       {"id,name,status,daily_budget"},
	}.Encode())

	var resp struct {
		Data []campaignInfo `json:"data"`
	}
	if err := s.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *adsService) setCampaignStatus(ctx context.Context, campaignID, status string) error {
	params := url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"status":       {status},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s", graphAPIBase, campaignID), strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out struct {
		Success bool `json:"success"`
	}
	return decodeGraphResponse(resp, &out)
}

func (s *adsService) accountInsights(ctx context.Context, since, until string) (insightRow, error) {
	timeRange, _ := json.Marshal(map[string]string{"since": since, "until": until})
	endpoint := fmt.Sprintf("%s/%s/insights?%s", graphAPIBase, s.cfg.Meta.AdAccountID, url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"fields":       {"impressions,clicks,ctr,cpc,cpm,spend"},
		"time_range":   {string(timeRange)},
	}.Encode())

	var resp insightsResponse
	if err := s.get(ctx, endpoint, &resp); err != nil {
		return insightRow{}, err
	}
	if resp.Err != nil {
		return insightRow{}, errors.New(resp.Err.Message)
	}
	if len(resp.Data) == 0 {
		return insightRow{}, nil
	}
	return resp.Data[0], nil
}

func (s *adsService) entityInsights(ctx context.Context, entityID, fields string) (insightRow, error) {
	endpoint := fmt.Sprintf("%s/%s/insights?%s", graphAPIBase, entityID, url.Values{
		"access_token": {s.cfg.Meta.AccessToken},
		"fields":       {fields},
	}.Encode())

	var resp insightsResponse
	if err := s.get(ctx, endpoint, &resp); err != nil {
		return insightRow{}, err
	}
	if len(resp.Data) == 0 {
		return insightRow{}, nil
	}
	return resp.Data[0], nil
}

func (s *adsService) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

func percentChange(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
