package retailer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// Retail markup is unversioned and changes without notice, so every lookup
// runs an ordered list of selector candidates and stops at the first that
// yields matches. Chains are isolated per field, not per page: when one field's
// markup changes, the rest of the product still extracts.

// findContainers returns the matches of the first container selector that
// yields any, together with the selector used (for logging)
func findContainers(doc *goquery.Document, selectors []string) (*goquery.Selection, string) {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			return sel, selector
		}
	}
	return nil, ""
}

// textFirst returns the trimmed text of the first field selector that matches
// within the container
func textFirst(container *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if el := container.Find(selector).First(); el.Length() > 0 {
			if text := strings.TrimSpace(el.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// attrFirst returns the first non-empty attribute value found by trying each
// selector against each attribute name in order
func attrFirst(container *goquery.Selection, selectors []string, attrs []string) string {
	for _, selector := range selectors {
		el := container.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		for _, attr := range attrs {
			if value, exists := el.Attr(attr); exists {
				if value = strings.TrimSpace(value); value != "" {
					return value
				}
			}
		}
	}
	return ""
}

// priceRegex pulls the first numeric amount out of a price string like
// "$29.50", "£18", "24,99 €" or "Sale $12.99 was $19.99"
var priceRegex = regexp.MustCompile(`\d+(?:\.\d{1,2})?`)

// thousandsRegex matches a comma used as thousands separator ("1,299.00")
var thousandsRegex = regexp.MustCompile(`,(\d{3})`)

// parsePrice normalizes a scraped price string into a decimal amount.
// Currency symbols and thousands separators are stripped; the first amount in
// the string wins (sale price is listed before the crossed-out original).
func parsePrice(raw string) (decimal.Decimal, bool) {
	raw = thousandsRegex.ReplaceAllString(raw, "$1")
	raw = strings.ReplaceAll(raw, ",", ".")
	match := priceRegex.FindString(raw)
	if match == "" {
		return decimal.Zero, false
	}

	price, err := decimal.NewFromString(match)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}

	return price, true
}

// absoluteURL resolves a possibly relative href against the retailer base URL
func absoluteURL(baseURL, href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return strings.TrimSuffix(baseURL, "/") + href
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + href
}
