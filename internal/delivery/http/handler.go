package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/internal/domain"
	"github.com/skinpredict/backend/internal/usecase"
)

const defaultStoreRadius = 5000

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis        *usecase.AnalysisService
	recommendations *usecase.RecommendationService
	locator         *usecase.LocatorService
	mailer          domain.Mailer
	log             *logrus.Entry
}

// NewHandler creates a new HTTP handler
func NewHandler(
	analysis *usecase.AnalysisService,
	recommendations *usecase.RecommendationService,
	locator *usecase.LocatorService,
	mailer domain.Mailer,
) *Handler {
	return &Handler{
		analysis:        analysis,
		recommendations: recommendations,
		locator:         locator,
		mailer:          mailer,
		log:             logrus.WithField("component", "http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skinpredict-backend",
		"version": "1.0.0",
	})
}

type analyzeRequest struct {
	Image   string `json:"image"`
	UseGroq bool   `json:"use_groq"`
}

// Analyze runs skin analysis on a base64-encoded facial image
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.analysis.Analyze(c.Request.Context(), usecase.AnalyzeRequest{
		ImageBase64: req.Image,
		UseGroq:     req.UseGroq,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type chatRequest struct {
	Message      string               `json:"message"`
	Conversation []domain.ChatMessage `json:"conversation"`
	SkinAnalysis *domain.SkinAnalysis `json:"skinAnalysis"`
}

// Chat answers a skincare question via the chatbot
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.analysis.Chat(c.Request.Context(), req.Message, req.Conversation, req.SkinAnalysis)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// FindDermatologists returns dermatologist practices near lat/lng
func (h *Handler) FindDermatologists(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}

	dermatologists, err := h.locator.FindDermatologists(c.Request.Context(), lat, lng)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dermatologists": dermatologists})
}

// ProductRecommendations returns product recommendations for a skin profile.
// Retailer failures degrade to catalog entries, so this endpoint does not 500
// on scraper trouble.
func (h *Handler) ProductRecommendations(c *gin.Context) {
	products := h.recommendations.Recommend(c.Request.Context(), recommendRequestFromQuery(c))
	c.JSON(http.StatusOK, products)
}

// NearbyProducts returns recommendations annotated with nearby stores
func (h *Handler) NearbyProducts(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	radius := defaultStoreRadius
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a positive integer"})
			return
		}
		radius = parsed
	}

	products := h.recommendations.Recommend(c.Request.Context(), recommendRequestFromQuery(c))
	result, err := h.locator.AnnotateWithNearbyStores(c.Request.Context(), products, lat, lng, radius)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type sendEmailRequest struct {
	Email   string               `json:"email"`
	Results *domain.SkinAnalysis `json:"results"`
}

// SendEmail emails analysis results to the given address. SMTP transport
// failures degrade to a demo-mode success so local setups without mail
// credentials still complete the flow.
func (h *Handler) SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Email == "" || req.Results == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and results are required"})
		return
	}

	if err := h.mailer.SendResults(c.Request.Context(), req.Email, req.Results); err != nil {
		h.log.Warnf("email delivery failed, responding in demo mode: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"note":    "demo mode: email delivery is not configured, results were not sent",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// recommendRequestFromQuery reads the shared skin-profile query parameters.
// Unrecognized skin types fall back to Normal and unrecognized issues are
// skipped, so a sloppy client still gets sensible recommendations.
func recommendRequestFromQuery(c *gin.Context) usecase.RecommendRequest {
	skinType, _ := domain.ParseSkinType(c.Query("skinType"))

	var issues []domain.SkinIssue
	for _, raw := range c.QueryArray("skinIssues") {
		if issue, ok := domain.ParseSkinIssue(raw); ok {
			issues = append(issues, issue)
		}
	}

	maxProducts := 0
	if raw := c.Query("maxProducts"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxProducts = parsed
		}
	}

	return usecase.RecommendRequest{
		SkinType:    skinType,
		SkinIssues:  issues,
		Gender:      domain.ParseGender(c.Query("gender")),
		AgeGroup:    c.Query("ageGroup"),
		MaxProducts: maxProducts,
		Country:     c.Query("country"),
	}
}

// parseLatLng reads the required lat/lng query parameters, writing a 400
// response and returning ok=false when they are missing or malformed
func parseLatLng(c *gin.Context) (float64, float64, bool) {
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw == "" || lngRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lng, errLng := strconv.ParseFloat(lngRaw, 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be valid coordinates"})
		return 0, 0, false
	}
	return lat, lng, true
}

// respondError maps domain errors onto HTTP statuses
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrNoFaceDetected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
