package domain

// ScrapeQuery carries the parameters of one retailer search
type ScrapeQuery struct {
	SkinType    SkinType
	SkinIssues  []SkinIssue
	Gender      Gender
	AgeGroup    string
	MaxProducts int
}

// ScrapeResult is the outcome of one retailer fetch. A failed fetch carries
// its error alongside an empty product list so callers can distinguish
// "genuinely zero matches" from "fetch failed" when logging, while treating
// both the same way in the response.
type ScrapeResult struct {
	Retailer string
	Products []Product
	Err      error
}

// Failed reports whether the fetch itself failed (as opposed to succeeding
// with zero matches)
func (r ScrapeResult) Failed() bool {
	return r.Err != nil
}
