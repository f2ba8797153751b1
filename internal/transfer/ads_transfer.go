package transfer

type ExecuteRecommendationRequest struct {
	RecommendationID string `json:"recommendation_id"`
}
