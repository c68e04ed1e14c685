package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/internal/domain"
)

// chatSystemPrompt defines the assistant persona for the skincare chatbot
const chatSystemPrompt = `You are Hasna, a friendly and knowledgeable skincare assistant. ` +
	`You give practical, evidence-based skincare advice in a warm, conversational tone. ` +
	`Keep answers concise and focused on skincare. ` +
	`Always remind users to consult a dermatologist for serious or persistent concerns.`

// chatFallbackReply is returned when no chat API key is configured, so the
// chatbot endpoint stays usable in demo setups
const chatFallbackReply = "I'm sorry, I can't provide a personalized response right now. " +
	"In the meantime: cleanse gently twice a day, moisturize while your skin is damp, " +
	"and wear SPF 30 or higher every morning."

// AnalysisDeps holds the analysis service dependencies. Classifier,
// Demographics and Detector are optional: when a local model is absent the
// service leans on the vision API instead.
type AnalysisDeps struct {
	Classifier   domain.SkinClassifier
	Demographics domain.DemographicClassifier
	Detector     domain.FaceDetector
	Chat         domain.ChatCompleter
}

// AnalyzeRequest carries one image analysis request
type AnalyzeRequest struct {
	ImageBase64 string
	// UseGroq forces the vision API path even when a local classifier exists
	UseGroq bool
}

// AnalysisService runs facial skin analysis and the skincare chatbot
type AnalysisService struct {
	classifier   domain.SkinClassifier
	demographics domain.DemographicClassifier
	detector     domain.FaceDetector
	chat         domain.ChatCompleter
	log          *logrus.Entry
}

// NewAnalysisService creates the skin analysis service
func NewAnalysisService(deps AnalysisDeps) *AnalysisService {
	return &AnalysisService{
		classifier:   deps.Classifier,
		demographics: deps.Demographics,
		detector:     deps.Detector,
		chat:         deps.Chat,
		log:          logrus.WithField("component", "analysis"),
	}
}

// Analyze classifies the skin in a base64-encoded facial image. The vision
// API path is taken when requested or when no local classifier is wired;
// a vision failure falls back to the local classifier when one exists.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*domain.SkinAnalysis, error) {
	if strings.TrimSpace(req.ImageBase64) == "" {
		return nil, fmt.Errorf("%w: image is required", domain.ErrInvalidRequest)
	}

	raw, err := base64.StdEncoding.DecodeString(stripDataURLPrefix(req.ImageBase64))
	if err != nil {
		return nil, fmt.Errorf("%w: not valid base64", domain.ErrInvalidImage)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	face := raw
	if s.detector != nil {
		cropped, err := s.detector.CropFace(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrNoFaceDetected, err)
		}
		face = cropped
	}

	var demographics *domain.Demographics
	if s.demographics != nil {
		demographics, err = s.demographics.Predict(ctx, face)
		if err != nil {
			// demographic prediction is best-effort, never fatal
			s.log.Warnf("demographic prediction failed: %v", err)
			demographics = nil
		}
	}

	analysis, err := s.classify(ctx, req, face)
	if err != nil {
		return nil, err
	}

	analysis.AnalysisID = uuid.New().String()
	analysis.Demographics = demographics
	if demographics != nil {
		analysis.PersonalizedAdvice = buildPersonalizedAdvice(analysis, demographics)
	}
	return analysis, nil
}

func (s *AnalysisService) classify(ctx context.Context, req AnalyzeRequest, face []byte) (*domain.SkinAnalysis, error) {
	useVision := req.UseGroq || s.classifier == nil
	if useVision {
		description, err := s.chat.DescribeImage(ctx, stripDataURLPrefix(req.ImageBase64))
		if err == nil {
			return domain.ParseSkinAnalysis(description), nil
		}
		if s.classifier == nil {
			if errors.Is(err, domain.ErrMissingAPIKey) {
				return nil, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
			}
			return nil, err
		}
		s.log.Warnf("vision analysis failed, falling back to the local classifier: %v", err)
	}

	result, err := s.classifier.Classify(ctx, face)
	if err != nil {
		return nil, fmt.Errorf("skin classification failed: %w", err)
	}
	return &domain.SkinAnalysis{
		SkinType:   result.SkinType,
		SkinIssues: result.SkinIssues,
	}, nil
}

// Chat answers a skincare question, optionally grounded in a prior analysis.
// A missing API key degrades to a canned reply instead of an error.
func (s *AnalysisService) Chat(ctx context.Context, message string, conversation []domain.ChatMessage, analysis *domain.SkinAnalysis) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", domain.ErrInvalidRequest)
	}

	system := chatSystemPrompt
	if analysis != nil {
		system += "\n\n" + analysisContext(analysis)
	}

	messages := make([]domain.ChatMessage, 0, len(conversation)+2)
	messages = append(messages, domain.ChatMessage{Role: "system", Content: system})
	messages = append(messages, conversation...)
	messages = append(messages, domain.ChatMessage{Role: "user", Content: message})

	reply, err := s.chat.Complete(ctx, messages)
	if err != nil {
		if errors.Is(err, domain.ErrMissingAPIKey) {
			s.log.Warn("chat API key not configured, returning the fallback reply")
			return chatFallbackReply, nil
		}
		return "", err
	}
	return reply, nil
}

// analysisContext summarizes a prior skin analysis for the chat system prompt
func analysisContext(analysis *domain.SkinAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user's skin analysis: skin type %s (%.0f%% confidence).",
		analysis.SkinType.Type, analysis.SkinType.Confidence)
	if len(analysis.SkinIssues) > 0 {
		names := make([]string, 0, len(analysis.SkinIssues))
		for _, issue := range analysis.SkinIssues {
			names = append(names, string(issue.Name))
		}
		fmt.Fprintf(&b, " Detected issues: %s.", strings.Join(names, ", "))
	}
	b.WriteString(" Tailor your advice to this profile.")
	return b.String()
}

// buildPersonalizedAdvice composes advice from the skin type, detected
// issues and predicted age group
func buildPersonalizedAdvice(analysis *domain.SkinAnalysis, demographics *domain.Demographics) string {
	var parts []string

	switch analysis.SkinType.Type {
	case domain.SkinTypeDry:
		parts = append(parts, "Your skin leans dry: favor cream cleansers and layer a hyaluronic acid serum under your moisturizer.")
	case domain.SkinTypeOily:
		parts = append(parts, "Your skin leans oily: a gel cleanser and a lightweight, non-comedogenic moisturizer will keep shine in check.")
	case domain.SkinTypeCombination:
		parts = append(parts, "Your skin is combination: treat the oily T-zone and drier cheeks separately rather than with one heavy product.")
	case domain.SkinTypeSensitive:
		parts = append(parts, "Your skin is sensitive: introduce new products one at a time and avoid fragrance and high-strength acids.")
	default:
		parts = append(parts, "Your skin is well balanced: a gentle cleanser, daily moisturizer and sunscreen will maintain it.")
	}

	for _, issue := range analysis.SkinIssues {
		switch issue.Name {
		case domain.IssueAcne:
			parts = append(parts, "For the acne, look for salicylic acid or benzoyl peroxide and resist picking at blemishes.")
		case domain.IssueRedness:
			parts = append(parts, "For the redness, soothing ingredients like centella, oat or niacinamide help calm irritation.")
		case domain.IssueBags:
			parts = append(parts, "For the under-eye area, a caffeine eye cream and consistent sleep make the biggest difference.")
		case domain.IssueWrinkles:
			parts = append(parts, "For fine lines, a nightly retinoid introduced gradually is the best-studied option.")
		case domain.IssueDarkSpots:
			parts = append(parts, "For dark spots, vitamin C in the morning and diligent sunscreen prevent them from deepening.")
		}
	}

	if demographics.Age != "" {
		parts = append(parts, fmt.Sprintf("In the %s age range, consistent daily sunscreen matters more than any single product.", demographics.Age))
	}

	return strings.Join(parts, " ")
}

// stripDataURLPrefix drops a leading data-URL header ("data:image/...;base64,")
// so clients may send either form
func stripDataURLPrefix(s string) string {
	if idx := strings.Index(s, "base64,"); idx != -1 && strings.HasPrefix(s, "data:") {
		return s[idx+len("base64,"):]
	}
	return s
}
