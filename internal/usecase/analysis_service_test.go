package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skinpredict/backend/internal/domain"
)

// 1x1 transparent PNG
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

type stubChat struct {
	describeText string
	describeErr  error
	completeText string
	completeErr  error
	gotMessages  []domain.ChatMessage
	describes    int
}

func (c *stubChat) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	c.gotMessages = messages
	if c.completeErr != nil {
		return "", c.completeErr
	}
	return c.completeText, nil
}

func (c *stubChat) DescribeImage(ctx context.Context, imageBase64 string) (string, error) {
	c.describes++
	if c.describeErr != nil {
		return "", c.describeErr
	}
	return c.describeText, nil
}

type stubClassifier struct {
	result *domain.ClassifierResult
	err    error
	calls  int
}

func (s *stubClassifier) Classify(ctx context.Context, image []byte) (*domain.ClassifierResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubDemographics struct {
	demographics *domain.Demographics
	err          error
}

func (s *stubDemographics) Predict(ctx context.Context, face []byte) (*domain.Demographics, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.demographics, nil
}

type stubDetector struct {
	err error
}

func (s *stubDetector) CropFace(image []byte) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return image, nil
}

func TestAnalyze_RejectsMissingImage(t *testing.T) {
	svc := NewAnalysisService(AnalysisDeps{Chat: &stubChat{}})

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{ImageBase64: "  "})

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestAnalyze_RejectsInvalidBase64(t *testing.T) {
	svc := NewAnalysisService(AnalysisDeps{Chat: &stubChat{}})

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{ImageBase64: "not!!valid!!base64"})

	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestAnalyze_RejectsNonImagePayload(t *testing.T) {
	svc := NewAnalysisService(AnalysisDeps{Chat: &stubChat{}})
	payload := base64.StdEncoding.EncodeToString([]byte("just some text"))

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{ImageBase64: payload})

	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestAnalyze_VisionPath(t *testing.T) {
	chat := &stubChat{describeText: "The skin is very oily with severe acne."}
	svc := NewAnalysisService(AnalysisDeps{Chat: chat})

	analysis, err := svc.Analyze(context.Background(), AnalyzeRequest{ImageBase64: tinyPNGBase64})

	require.NoError(t, err)
	assert.Equal(t, domain.SkinTypeOily, analysis.SkinType.Type)
	assert.Equal(t, 85.0, analysis.SkinType.Confidence)
	require.Len(t, analysis.SkinIssues, 1)
	assert.Equal(t, domain.IssueAcne, analysis.SkinIssues[0].Name)
	assert.NotEmpty(t, analysis.AnalysisID)
	assert.Equal(t, chat.describeText, analysis.AIResponse)
}

func TestAnalyze_AcceptsDataURLPrefix(t *testing.T) {
	chat := &stubChat{describeText: "Normal, healthy skin."}
	svc := NewAnalysisService(AnalysisDeps{Chat: chat})

	analysis, err := svc.Analyze(context.Background(), AnalyzeRequest{
		ImageBase64: "data:image/png;base64," + tinyPNGBase64,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SkinTypeNormal, analysis.SkinType.Type)
}

func TestAnalyze_NoClassifierAndNoAPIKey(t *testing.T) {
	chat := &stubChat{describeErr: domain.ErrMissingAPIKey}
	svc := NewAnalysisService(AnalysisDeps{Chat: chat})

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{ImageBase64: tinyPNGBase64})

	assert.ErrorIs(t, err, domain.ErrClassifierUnavailable)
}

func TestAnalyze_VisionFailureFallsBackToLocalClassifier(t *testing.T) {
	chat := &stubChat{describeErr: domain.ErrChatAPIFailure}
	classifier := &stubClassifier{result: &domain.ClassifierResult{
		SkinType: domain.SkinTypeResult{Type: domain.SkinTypeDry, Confidence: 91.2},
	}}
	svc := NewAnalysisService(AnalysisDeps{Chat: chat, Classifier: classifier})

	analysis, err := svc.Analyze(context.Background(), AnalyzeRequest{
		ImageBase64: tinyPNGBase64,
		UseGroq:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, classifier.calls)
	assert.Equal(t, domain.SkinTypeDry, analysis.SkinType.Type)
}

func TestAnalyze_LocalClassifierPreferredWhenNotForced(t *testing.T) {
	chat := &stubChat{describeText: "should not be used"}
	classifier := &stubClassifier{result: &domain.ClassifierResult{
		SkinType: domain.SkinTypeResult{Type: domain.SkinTypeSensitive, Confidence: 88.0},
		SkinIssues: []domain.SkinIssueResult{
			{Name: domain.IssueRedness, Confidence: 72.0},
		},
	}}
	svc := NewAnalysisService(AnalysisDeps{Chat: chat, Classifier: classifier})

	analysis, err := svc.Analyze(context.Background(), AnalyzeRequest{ImageBase64: tinyPNGBase64})

	require.NoError(t, err)
	assert.Zero(t, chat.describes)
	assert.Equal(t, domain.SkinTypeSensitive, analysis.SkinType.Type)
	require.Len(t, analysis.SkinIssues, 1)
}

func TestAnalyze_FaceDetectorFailure(t *testing.T) {
	svc := NewAnalysisService(AnalysisDeps{
		Chat:     &stubChat{describeText: "Normal skin."},
		Detector: &stubDetector{err: errors.New("no face found")},
	})

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{ImageBase64: tinyPNGBase64})

	assert.ErrorIs(t, err, domain.ErrNoFaceDetected)
}

func TestAnalyze_AttachesDemographicsAndAdvice(t *testing.T) {
	svc := NewAnalysisService(AnalysisDeps{
		Chat: &stubChat{describeText: "Dry skin with some redness."},
		Demographics: &stubDemographics{demographics: &domain.Demographics{
			Age:    "20-29",
			Gender: "Woman",
		}},
	})

	analysis, err := svc.Analyze(context.Background(), AnalyzeRequest{ImageBase64: tinyPNGBase64})

	require.NoError(t, err)
	require.NotNil(t, analysis.Demographics)
	assert.Equal(t, "20-29", analysis.Demographics.Age)
	assert.Contains(t, analysis.PersonalizedAdvice, "dry")
	assert.Contains(t, analysis.PersonalizedAdvice, "20-29")
}

func TestAnalyze_DemographicsFailureIsNotFatal(t *testing.T) {
	svc := NewAnalysisService(AnalysisDeps{
		Chat:         &stubChat{describeText: "Normal skin."},
		Demographics: &stubDemographics{err: errors.New("model not loaded")},
	})

	analysis, err := svc.Analyze(context.Background(), AnalyzeRequest{ImageBase64: tinyPNGBase64})

	require.NoError(t, err)
	assert.Nil(t, analysis.Demographics)
	assert.Empty(t, analysis.PersonalizedAdvice)
}

func TestChat_RejectsEmptyMessage(t *testing.T) {
	svc := NewAnalysisService(AnalysisDeps{Chat: &stubChat{}})

	_, err := svc.Chat(context.Background(), "   ", nil, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestChat_BuildsSystemPromptWithAnalysisContext(t *testing.T) {
	chat := &stubChat{completeText: "Try a gentle salicylic acid cleanser."}
	svc := NewAnalysisService(AnalysisDeps{Chat: chat})

	reply, err := svc.Chat(context.Background(), "What cleanser should I use?",
		[]domain.ChatMessage{
			{Role: "user", Content: "Hi!"},
			{Role: "assistant", Content: "Hello, how can I help?"},
		},
		&domain.SkinAnalysis{
			SkinType: domain.SkinTypeResult{Type: domain.SkinTypeOily, Confidence: 75},
			SkinIssues: []domain.SkinIssueResult{
				{Name: domain.IssueAcne, Confidence: 65},
			},
		})

	require.NoError(t, err)
	assert.Equal(t, "Try a gentle salicylic acid cleanser.", reply)

	require.Len(t, chat.gotMessages, 4)
	assert.Equal(t, "system", chat.gotMessages[0].Role)
	assert.Contains(t, chat.gotMessages[0].Content, "Hasna")
	assert.Contains(t, chat.gotMessages[0].Content, "Oily")
	assert.Contains(t, chat.gotMessages[0].Content, "Acne")
	assert.Equal(t, "What cleanser should I use?", chat.gotMessages[3].Content)
}

func TestChat_MissingKeyReturnsFallbackReply(t *testing.T) {
	chat := &stubChat{completeErr: domain.ErrMissingAPIKey}
	svc := NewAnalysisService(AnalysisDeps{Chat: chat})

	reply, err := svc.Chat(context.Background(), "Help with my routine?", nil, nil)

	require.NoError(t, err)
	assert.Contains(t, reply, "SPF 30")
}

func TestChat_APIFailurePropagates(t *testing.T) {
	chat := &stubChat{completeErr: domain.ErrChatAPIFailure}
	svc := NewAnalysisService(AnalysisDeps{Chat: chat})

	_, err := svc.Chat(context.Background(), "Help?", nil, nil)

	assert.ErrorIs(t, err, domain.ErrChatAPIFailure)
}
