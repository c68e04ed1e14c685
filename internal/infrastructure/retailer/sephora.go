package retailer

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/internal/domain"
)

const defaultMaxProducts = 4

// sephoraTypePaths maps a skin type to the Sephora category path segment
var sephoraTypePaths = map[domain.SkinType]string{
	domain.SkinTypeNormal:      "skin-care-solutions-normal-skin",
	domain.SkinTypeDry:         "moisturizer-skincare-dry-skin",
	domain.SkinTypeOily:        "skin-care-solutions-oily-skin",
	domain.SkinTypeCombination: "skin-care-solutions-combination-skin",
	domain.SkinTypeSensitive:   "skin-care-sensitive-skin",
	domain.SkinTypeAll:         "skincare",
}

// sephoraIssuePaths maps a skin issue to a refinement path segment
var sephoraIssuePaths = map[domain.SkinIssue]string{
	domain.IssueAcne:      "acne-treatment-blemish-remover",
	domain.IssueRedness:   "redness-rosacea-treatment",
	domain.IssueBags:      "eye-cream-dark-circles",
	domain.IssueWrinkles:  "wrinkle-cream",
	domain.IssueDarkSpots: "dark-spot-remover",
	domain.IssueDullness:  "exfoliators",
	domain.IssuePores:     "pore-minimizer",
}

// Selector chains, most current markup first. When Sephora ships a redesign
// the first entries stop matching and the older ones take over.
var (
	sephoraContainerSelectors = []string{
		"div[data-comp='ProductTile ']",
		"div[data-comp='ProductTile']",
		"a[data-comp='ProductTile']",
		"div.product-tile",
		"li.css-1dc8fzw",
	}
	sephoraNameSelectors = []string{
		"span[data-at='sku_item_name']",
		".ProductTile-name",
		".product-name",
		"h3",
	}
	sephoraBrandSelectors = []string{
		"span[data-at='sku_item_brand']",
		".ProductTile-brand",
		".product-brand",
	}
	sephoraPriceSelectors = []string{
		"span[data-at='sku_item_price_list']",
		"b[data-at='sku_item_price_list']",
		".product-price",
		".price",
	}
	sephoraImageSelectors = []string{"img"}
	sephoraLinkSelectors  = []string{"a"}
)

// SephoraAdapter scrapes skincare search results from sephora.com
type SephoraAdapter struct {
	fetcher *Fetcher
	baseURL string
	log     *logrus.Entry
}

// NewSephoraAdapter creates a Sephora retailer adapter
func NewSephoraAdapter(fetcher *Fetcher, baseURL string) *SephoraAdapter {
	return &SephoraAdapter{
		fetcher: fetcher,
		baseURL: baseURL,
		log:     logrus.WithField("component", "retailer.sephora"),
	}
}

// Name returns the retailer identifier
func (a *SephoraAdapter) Name() string {
	return "sephora"
}

// Fetch retrieves up to query.MaxProducts products for the given skin profile.
// Failures never propagate: they are recorded on the ScrapeResult and the
// product list stays empty.
func (a *SephoraAdapter) Fetch(ctx context.Context, query domain.ScrapeQuery) domain.ScrapeResult {
	result := domain.ScrapeResult{Retailer: a.Name()}

	doc, err := a.fetcher.GetDocument(ctx, a.searchURL(query))
	if err != nil {
		a.log.Warnf("fetch failed: %v", err)
		result.Err = err
		return result
	}

	result.Products = a.parseProducts(doc, query)
	a.log.Debugf("parsed %d products", len(result.Products))
	return result
}

// searchURL builds the category URL for the requested skin profile. The first
// skin issue refines the path when a mapping for it exists.
func (a *SephoraAdapter) searchURL(query domain.ScrapeQuery) string {
	segment, ok := sephoraTypePaths[query.SkinType]
	if !ok {
		segment = sephoraTypePaths[domain.SkinTypeAll]
	}

	u := fmt.Sprintf("%s/shop/%s", a.baseURL, segment)
	if len(query.SkinIssues) > 0 {
		if issueSegment, ok := sephoraIssuePaths[query.SkinIssues[0]]; ok {
			u = fmt.Sprintf("%s/shop/%s", a.baseURL, issueSegment)
		}
	}
	return u
}

func (a *SephoraAdapter) parseProducts(doc *goquery.Document, query domain.ScrapeQuery) []domain.Product {
	containers, selector := findContainers(doc, sephoraContainerSelectors)
	if containers == nil {
		a.log.Warn("no product containers matched any known selector")
		return nil
	}
	a.log.Debugf("containers matched selector %q", selector)

	maxProducts := query.MaxProducts
	if maxProducts <= 0 {
		maxProducts = defaultMaxProducts
	}

	var products []domain.Product
	containers.EachWithBreak(func(i int, tile *goquery.Selection) bool {
		if len(products) >= maxProducts {
			return false
		}

		name := textFirst(tile, sephoraNameSelectors)
		price, priceOK := parsePrice(textFirst(tile, sephoraPriceSelectors))
		if name == "" || !priceOK {
			// Promo tiles and ads share the grid markup; skip anything that
			// does not carry both a name and a price.
			return true
		}

		brand := textFirst(tile, sephoraBrandSelectors)
		if brand == "" {
			brand = "Sephora Collection"
		}

		products = append(products, domain.Product{
			Brand:         brand,
			Name:          name,
			Price:         price,
			Currency:      "USD",
			Link:          absoluteURL(a.baseURL, attrFirst(tile, sephoraLinkSelectors, []string{"href"})),
			ImageURL:      attrFirst(tile, sephoraImageSelectors, []string{"src", "data-src", "srcset"}),
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
