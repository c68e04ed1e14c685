package retailer

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/internal/domain"
)

// ultaTypeSegments maps a skin type to the Ulta search segment
var ultaTypeSegments = map[domain.SkinType]string{
	domain.SkinTypeNormal:      "normal-skin",
	domain.SkinTypeDry:         "dry-skin",
	domain.SkinTypeOily:        "oily-skin",
	domain.SkinTypeCombination: "combination-skin",
	domain.SkinTypeSensitive:   "sensitive-skin",
	domain.SkinTypeAll:         "skin-care",
}

// ultaIssueSegments maps a skin issue to a search keyword segment
var ultaIssueSegments = map[domain.SkinIssue]string{
	domain.IssueAcne:      "acne",
	domain.IssueRedness:   "redness",
	domain.IssueBags:      "under-eye-bags",
	domain.IssueWrinkles:  "anti-aging",
	domain.IssueDarkSpots: "dark-spots",
	domain.IssueDullness:  "brightening",
	domain.IssuePores:     "pores",
}

// ultaURLPatterns are tried in order; Ulta has restructured its category URLs
// more than once, so the adapter accepts the first pattern that both returns
// 200 and yields parseable containers.
var ultaURLPatterns = []string{
	"%s/shop/skin-care/%s",
	"%s/skin-care/%s",
	"%s/search?q=%s",
}

var (
	ultaContainerSelectors = []string{
		"div.ProductCard",
		"li.ProductListingResults__productCard",
		"div.productQvContainer",
		"div.product-card",
	}
	ultaNameSelectors = []string{
		"span.ProductCard__name",
		"p.prod-title",
		".product-name",
		"h3",
	}
	ultaBrandSelectors = []string{
		"span.ProductCard__brand",
		"h4.prod-brand",
		".product-brand",
	}
	ultaPriceSelectors = []string{
		"span.ProductCard__price",
		"span.ProductPricingPanel",
		".product-price",
		".price",
	}
	ultaImageSelectors = []string{"img"}
	ultaLinkSelectors  = []string{"a"}
)

// UltaAdapter scrapes skincare search results from ulta.com
type UltaAdapter struct {
	fetcher *Fetcher
	baseURL string
	log     *logrus.Entry
}

// NewUltaAdapter creates an Ulta retailer adapter
func NewUltaAdapter(fetcher *Fetcher, baseURL string) *UltaAdapter {
	return &UltaAdapter{
		fetcher: fetcher,
		baseURL: baseURL,
		log:     logrus.WithField("component", "retailer.ulta"),
	}
}

// Name returns the retailer identifier
func (a *UltaAdapter) Name() string {
	return "ulta"
}

// Fetch tries each known URL pattern in order and parses the first page that
// responds 200 with recognizable product containers. Failures never propagate
// past the ScrapeResult.
func (a *UltaAdapter) Fetch(ctx context.Context, query domain.ScrapeQuery) domain.ScrapeResult {
	result := domain.ScrapeResult{Retailer: a.Name()}

	segment := a.searchSegment(query)
	var lastErr error
	for _, pattern := range ultaURLPatterns {
		pageURL := fmt.Sprintf(pattern, a.baseURL, segment)

		doc, err := a.fetcher.GetDocument(ctx, pageURL)
		if err != nil {
			a.log.Debugf("pattern %q failed: %v", pattern, err)
			lastErr = err
			continue
		}

		products := a.parseProducts(doc, query)
		if len(products) == 0 {
			a.log.Debugf("pattern %q returned 200 but no parseable containers", pattern)
			continue
		}

		result.Products = products
		return result
	}

	if lastErr != nil {
		a.log.Warnf("all URL patterns failed, last error: %v", lastErr)
		result.Err = lastErr
	}
	return result
}

// searchSegment picks the path segment for the query; the first mapped skin
// issue overrides the skin-type segment
func (a *UltaAdapter) searchSegment(query domain.ScrapeQuery) string {
	if len(query.SkinIssues) > 0 {
		if segment, ok := ultaIssueSegments[query.SkinIssues[0]]; ok {
			return segment
		}
	}
	if segment, ok := ultaTypeSegments[query.SkinType]; ok {
		return segment
	}
	return ultaTypeSegments[domain.SkinTypeAll]
}

func (a *UltaAdapter) parseProducts(doc *goquery.Document, query domain.ScrapeQuery) []domain.Product {
	containers, selector := findContainers(doc, ultaContainerSelectors)
	if containers == nil {
		return nil
	}
	a.log.Debugf("containers matched selector %q", selector)

	maxProducts := query.MaxProducts
	if maxProducts <= 0 {
		maxProducts = defaultMaxProducts
	}

	var products []domain.Product
	containers.EachWithBreak(func(i int, card *goquery.Selection) bool {
		if len(products) >= maxProducts {
			return false
		}

		name := textFirst(card, ultaNameSelectors)
		price, priceOK := parsePrice(textFirst(card, ultaPriceSelectors))
		if name == "" || !priceOK {
			return true
		}

		brand := textFirst(card, ultaBrandSelectors)
		if brand == "" {
			brand = "Ulta Beauty Collection"
		}

		products = append(products, domain.Product{
			Brand:         brand,
			Name:          name,
			Price:         price,
			Currency:      "USD",
			Link:          absoluteURL(a.baseURL, attrFirst(card, ultaLinkSelectors, []string{"href"})),
			ImageURL:      attrFirst(card, ultaImageSelectors, []string{"src", "data-src", "srcset"}),
			ForSkinTypes:  []domain.SkinType{query.SkinType},
			ForSkinIssues: query.SkinIssues,
			TargetGender:  domain.GenderAll,
			PriceCategory: domain.CategorizePrice(price),
			Source:        a.Name(),
		})
		return true
	})

	return products
}
