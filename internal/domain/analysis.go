package domain

// SkinTypeResult is the classified skin type with model confidence (0-100)
type SkinTypeResult struct {
	Type       SkinType `json:"type"`
	Confidence float64  `json:"confidence"`
}

// SkinIssueResult is a detected skin issue with model confidence (0-100)
type SkinIssueResult struct {
	Name       SkinIssue `json:"name"`
	Confidence float64   `json:"confidence"`
}

// DemographicConfidence holds per-attribute confidences (0-1)
type DemographicConfidence struct {
	Race   float64 `json:"race"`
	Gender float64 `json:"gender"`
	Age    float64 `json:"age"`
}

// Demographics is the predicted demographic profile of a face crop
type Demographics struct {
	Race       string                `json:"race"`
	Gender     string                `json:"gender"`
	Age        string                `json:"age"`
	Confidence DemographicConfidence `json:"confidence"`
}

// SkinAnalysis is the full result of analyzing one facial image
type SkinAnalysis struct {
	AnalysisID         string            `json:"analysisId,omitempty"`
	SkinType           SkinTypeResult    `json:"skinType"`
	SkinIssues         []SkinIssueResult `json:"skinIssues"`
	Demographics       *Demographics     `json:"demographics,omitempty"`
	PersonalizedAdvice string            `json:"personalizedAdvice,omitempty"`
	AIResponse         string            `json:"ai_response,omitempty"`
}

// ClassifierResult is the raw output of a local skin classifier
type ClassifierResult struct {
	SkinType   SkinTypeResult
	SkinIssues []SkinIssueResult
}

// ChatMessage is a single turn in a chatbot conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
