package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SkinType is a skin-type category a product applies to
type SkinType string

const (
	SkinTypeNormal      SkinType = "Normal"
	SkinTypeDry         SkinType = "Dry"
	SkinTypeOily        SkinType = "Oily"
	SkinTypeCombination SkinType = "Combination"
	SkinTypeSensitive   SkinType = "Sensitive"
	SkinTypeAll         SkinType = "All"
)

// SkinIssue is a specific skin concern a product targets
type SkinIssue string

const (
	IssueAcne      SkinIssue = "Acne"
	IssueRedness   SkinIssue = "Redness"
	IssueBags      SkinIssue = "Bags"
	IssueWrinkles  SkinIssue = "Wrinkles"
	IssueDarkSpots SkinIssue = "DarkSpots"
	IssueDullness  SkinIssue = "Dullness"
	IssuePores     SkinIssue = "Pores"
)

// Gender is the audience a product is marketed to
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderAll    Gender = "All"
)

// PriceCategory is the derived price bucket of a product
type PriceCategory string

const (
	PriceBudget   PriceCategory = "Budget"
	PriceModerate PriceCategory = "Moderate"
	PricePremium  PriceCategory = "Premium"
)

// Price bucket thresholds: Budget < 10, Moderate < 25, Premium otherwise
var (
	budgetCeiling   = decimal.NewFromInt(10)
	moderateCeiling = decimal.NewFromInt(25)
)

// CategorizePrice maps a numeric price to its PriceCategory bucket.
// Boundaries are exact: 9.99 is Budget, 10.00 is Moderate, 25.00 is Premium.
func CategorizePrice(price decimal.Decimal) PriceCategory {
	if price.LessThan(budgetCeiling) {
		return PriceBudget
	}
	if price.LessThan(moderateCeiling) {
		return PriceModerate
	}
	return PricePremium
}

// ParseSkinType normalizes a raw skin-type string ("oily", "OILY") to the
// canonical SkinType. Unrecognized values return SkinTypeNormal with ok=false
// so callers can fall back to the default catalog.
func ParseSkinType(s string) (SkinType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return SkinTypeNormal, true
	case "dry":
		return SkinTypeDry, true
	case "oily":
		return SkinTypeOily, true
	case "combination":
		return SkinTypeCombination, true
	case "sensitive":
		return SkinTypeSensitive, true
	case "all":
		return SkinTypeAll, true
	}
	return SkinTypeNormal, false
}

// ParseSkinIssue normalizes a raw skin-issue string to the canonical
// SkinIssue; unrecognized values return ok=false and are skipped by callers
func ParseSkinIssue(s string) (SkinIssue, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "acne":
		return IssueAcne, true
	case "redness":
		return IssueRedness, true
	case "bags":
		return IssueBags, true
	case "wrinkles":
		return IssueWrinkles, true
	case "darkspots", "dark spots":
		return IssueDarkSpots, true
	case "dullness":
		return IssueDullness, true
	case "pores":
		return IssuePores, true
	}
	return "", false
}

// ParseGender normalizes a raw gender string, defaulting to GenderAll
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	}
	return GenderAll
}

// Product represents a skincare product recommendation
type Product struct {
	Brand         string          `json:"brand"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	Link          string          `json:"link"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Description   string          `json:"description,omitempty"`
	ForSkinTypes  []SkinType      `json:"forSkinType"`
	ForSkinIssues []SkinIssue     `json:"forSkinIssues,omitempty"`
	TargetGender  Gender          `json:"targetGender"`
	PriceCategory PriceCategory   `json:"priceCategory"`
	AvailableIn   string          `json:"availableIn,omitempty"`
	Source        string          `json:"source,omitempty"`
	NearbyStores  []StoreMatch    `json:"nearbyStores,omitempty"`
}

// DedupeKey returns the case-insensitive brand+name key used to guarantee
// uniqueness within a merged result set
func (p Product) DedupeKey() string {
	return strings.ToLower(strings.TrimSpace(p.Brand)) + "|" + strings.ToLower(strings.TrimSpace(p.Name))
}

// TargetsIssue reports whether the product is tagged for any of the given issues
func (p Product) TargetsIssue(issues []SkinIssue) bool {
	for _, want := range issues {
		for _, have := range p.ForSkinIssues {
			if have == want {
				return true
			}
		}
	}
	return false
}

// MatchesGender reports whether the product may be shown for the requested
// gender. Products tagged GenderAll match everyone.
func (p Product) MatchesGender(g Gender) bool {
	if p.TargetGender == GenderAll || g == GenderAll || g == "" {
		return true
	}
	return p.TargetGender == g
}

// DedupeProducts removes duplicate products by case-insensitive brand+name,
// preserving first-seen order
func DedupeProducts(products []Product) []Product {
	seen := make(map[string]bool, len(products))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		key := p.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
