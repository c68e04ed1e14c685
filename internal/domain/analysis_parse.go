package domain

import "strings"

// ParseSkinAnalysis maps a vision model's prose analysis onto a structured
// SkinAnalysis by keyword matching. Confidence values are fixed heuristics:
// the model does not return calibrated probabilities, only qualifiers like
// "very dry" or "severe acne".
func ParseSkinAnalysis(text string) *SkinAnalysis {
	lower := strings.ToLower(text)

	analysis := &SkinAnalysis{
		SkinType: SkinTypeResult{
			Type:       SkinTypeNormal,
			Confidence: 70.0,
		},
		AIResponse: text,
	}

	if strings.Contains(lower, "dry") {
		analysis.SkinType.Type = SkinTypeDry
		analysis.SkinType.Confidence = 75.0
		if strings.Contains(lower, "very dry") {
			analysis.SkinType.Confidence = 85.0
		}
	} else if strings.Contains(lower, "oily") {
		analysis.SkinType.Type = SkinTypeOily
		analysis.SkinType.Confidence = 75.0
		if strings.Contains(lower, "very oily") {
			analysis.SkinType.Confidence = 85.0
		}
	}

	if strings.Contains(lower, "acne") {
		confidence := 65.0
		if strings.Contains(lower, "severe acne") {
			confidence = 75.0
		}
		analysis.SkinIssues = append(analysis.SkinIssues, SkinIssueResult{
			Name:       IssueAcne,
			Confidence: confidence,
		})
	}

	if strings.Contains(lower, "redness") || strings.Contains(lower, "inflammation") {
		analysis.SkinIssues = append(analysis.SkinIssues, SkinIssueResult{
			Name:       IssueRedness,
			Confidence: 70.0,
		})
	}

	if strings.Contains(lower, "bags") || strings.Contains(lower, "dark circles") {
		analysis.SkinIssues = append(analysis.SkinIssues, SkinIssueResult{
			Name:       IssueBags,
			Confidence: 65.0,
		})
	}

	return analysis
}
