package usecase

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/internal/domain"
)

// CatalogStore serves the hand-curated fallback products. It is deterministic
// and side-effect-free: when both retailer scrapes fail, this is what
// guarantees a non-empty recommendation list.
type CatalogStore struct {
	log *logrus.Entry
}

// NewCatalogStore creates the static catalog store
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		log: logrus.WithField("component", "catalog"),
	}
}

func catalogProduct(brand, name, price, link, description string, skinType domain.SkinType, gender domain.Gender, issues ...domain.SkinIssue) domain.Product {
	amount := decimal.RequireFromString(price)
	return domain.Product{
		Brand:         brand,
		Name:          name,
		Price:         amount,
		Currency:      "USD",
		Link:          link,
		Description:   description,
		ForSkinTypes:  []domain.SkinType{skinType},
		ForSkinIssues: issues,
		TargetGender:  gender,
		PriceCategory: domain.CategorizePrice(amount),
		Source:        "catalog",
	}
}

// catalogEntries holds three pre-vetted products per skin type
var catalogEntries = map[domain.SkinType][]domain.Product{
	domain.SkinTypeNormal: {
		catalogProduct("CeraVe", "Foaming Facial Cleanser", "15.99",
			"https://www.cerave.com/skincare/cleansers/foaming-facial-cleanser",
			"Gel-based foaming cleanser with ceramides and niacinamide",
			domain.SkinTypeNormal, domain.GenderAll, domain.IssuePores),
		catalogProduct("Neutrogena", "Hydro Boost Water Gel", "19.99",
			"https://www.neutrogena.com/products/skincare/hydro-boost-water-gel",
			"Lightweight hyaluronic acid gel moisturizer",
			domain.SkinTypeNormal, domain.GenderAll, domain.IssueDullness),
		catalogProduct("Lab Series", "Daily Moisture Defense Lotion", "37.00",
			"https://www.labseries.com/product/daily-moisture-defense-lotion",
			"Oil-free daily hydration formulated for men's skin",
			domain.SkinTypeNormal, domain.GenderMale),
	},
	domain.SkinTypeDry: {
		catalogProduct("CeraVe", "Daily Moisturizing Lotion", "13.99",
			"https://www.cerave.com/skincare/moisturizers/daily-moisturizing-lotion",
			"Lightweight lotion with ceramides and hyaluronic acid",
			domain.SkinTypeDry, domain.GenderAll),
		catalogProduct("The Ordinary", "Hyaluronic Acid 2% + B5", "8.90",
			"https://theordinary.com/en-us/hyaluronic-acid-2-b5-serum",
			"Hydrating serum with multiple forms of hyaluronic acid",
			domain.SkinTypeDry, domain.GenderAll, domain.IssueDullness),
		catalogProduct("First Aid Beauty", "Ultra Repair Cream", "38.00",
			"https://www.firstaidbeauty.com/products/ultra-repair-cream",
			"Rich colloidal-oatmeal cream for dry, distressed skin",
			domain.SkinTypeDry, domain.GenderAll, domain.IssueRedness),
	},
	domain.SkinTypeOily: {
		catalogProduct("La Roche-Posay", "Effaclar Mat Moisturizer", "31.99",
			"https://www.laroche-posay.us/effaclar-mat",
			"Mattifying moisturizer that targets shine and enlarged pores",
			domain.SkinTypeOily, domain.GenderAll, domain.IssuePores),
		catalogProduct("Neutrogena", "Oil-Free Acne Fighting Face Wash", "9.49",
			"https://www.neutrogena.com/products/skincare/oil-free-acne-wash",
			"Salicylic acid cleanser for acne-prone skin",
			domain.SkinTypeOily, domain.GenderAll, domain.IssueAcne),
		catalogProduct("Paula's Choice", "Skin Perfecting 2% BHA Liquid Exfoliant", "34.00",
			"https://www.paulaschoice.com/skin-perfecting-2pct-bha-liquid-exfoliant",
			"Leave-on exfoliant that unclogs and visibly shrinks pores",
			domain.SkinTypeOily, domain.GenderAll, domain.IssuePores),
	},
	domain.SkinTypeCombination: {
		catalogProduct("Clinique", "Dramatically Different Moisturizing Gel", "32.50",
			"https://www.clinique.com/product/dramatically-different-moisturizing-gel",
			"Oil-free gel that balances combination skin zones",
			domain.SkinTypeCombination, domain.GenderAll),
		catalogProduct("CeraVe", "AM Facial Moisturizing Lotion SPF 30", "16.49",
			"https://www.cerave.com/skincare/moisturizers/am-facial-moisturizing-lotion",
			"Daily moisturizer with broad-spectrum sunscreen",
			domain.SkinTypeCombination, domain.GenderAll, domain.IssueDarkSpots),
		catalogProduct("The INKEY List", "Niacinamide Serum", "11.99",
			"https://www.theinkeylist.com/products/niacinamide",
			"Oil-control serum that reduces blemishes and redness",
			domain.SkinTypeCombination, domain.GenderAll, domain.IssuePores),
	},
	domain.SkinTypeSensitive: {
		catalogProduct("Vanicream", "Gentle Facial Cleanser", "8.99",
			"https://www.vanicream.com/product/gentle-facial-cleanser",
			"Free of dyes, fragrance and common chemical irritants",
			domain.SkinTypeSensitive, domain.GenderAll),
		catalogProduct("Aveeno", "Calm + Restore Oat Gel Moisturizer", "22.99",
			"https://www.aveeno.com/products/calm-restore-oat-gel-moisturizer",
			"Soothing prebiotic oat gel for sensitive skin",
			domain.SkinTypeSensitive, domain.GenderAll, domain.IssueRedness),
		catalogProduct("Avène", "Tolerance Control Soothing Skin Recovery Cream", "42.00",
			"https://www.aveneusa.com/tolerance-control-soothing-skin-recovery-cream",
			"Sterile-formula cream that calms reactive, irritated skin",
			domain.SkinTypeSensitive, domain.GenderAll, domain.IssueRedness),
	},
}

// Lookup returns up to maxProducts catalog entries for the skin profile.
// Unrecognized skin types fall back to the "normal" list. Entries tagged for
// one of the requested issues rank before the rest; relative order is
// otherwise preserved.
func (c *CatalogStore) Lookup(skinType domain.SkinType, issues []domain.SkinIssue, gender domain.Gender, maxProducts int) []domain.Product {
	entries, ok := catalogEntries[skinType]
	if !ok {
		c.log.Debugf("unrecognized skin type %q, using the normal-skin list", skinType)
		entries = catalogEntries[domain.SkinTypeNormal]
	}

	var filtered []domain.Product
	for _, p := range entries {
		if p.MatchesGender(gender) {
			filtered = append(filtered, p)
		}
	}

	if len(issues) > 0 {
		var issueSpecific, rest []domain.Product
		for _, p := range filtered {
			if p.TargetsIssue(issues) {
				issueSpecific = append(issueSpecific, p)
			} else {
				rest = append(rest, p)
			}
		}
		filtered = append(issueSpecific, rest...)
	}

	if maxProducts > 0 && len(filtered) > maxProducts {
		filtered = filtered[:maxProducts]
	}
	return filtered
}
