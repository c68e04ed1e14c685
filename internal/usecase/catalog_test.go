package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skinpredict/backend/internal/domain"
)

func TestCatalogLookup_ReturnsEntriesForSkinType(t *testing.T) {
	catalog := NewCatalogStore()

	products := catalog.Lookup(domain.SkinTypeDry, nil, domain.GenderAll, 8)

	require.Len(t, products, 3)
	for _, p := range products {
		assert.Contains(t, p.ForSkinTypes, domain.SkinTypeDry)
		assert.Equal(t, "catalog", p.Source)
		assert.NotEmpty(t, p.PriceCategory)
	}
}

func TestCatalogLookup_UnknownTypeFallsBackToNormal(t *testing.T) {
	catalog := NewCatalogStore()

	products := catalog.Lookup(domain.SkinType("mystery"), nil, domain.GenderAll, 8)

	require.NotEmpty(t, products)
	assert.Contains(t, products[0].ForSkinTypes, domain.SkinTypeNormal)
}

func TestCatalogLookup_IssueTaggedEntriesRankFirst(t *testing.T) {
	catalog := NewCatalogStore()

	products := catalog.Lookup(domain.SkinTypeOily, []domain.SkinIssue{domain.IssueAcne}, domain.GenderAll, 8)

	require.Len(t, products, 3)
	assert.Equal(t, "Oil-Free Acne Fighting Face Wash", products[0].Name)
	assert.True(t, products[0].TargetsIssue([]domain.SkinIssue{domain.IssueAcne}))
}

func TestCatalogLookup_FiltersByGender(t *testing.T) {
	catalog := NewCatalogStore()

	female := catalog.Lookup(domain.SkinTypeNormal, nil, domain.GenderFemale, 8)
	for _, p := range female {
		assert.NotEqual(t, domain.GenderMale, p.TargetGender)
	}
	require.Len(t, female, 2)

	male := catalog.Lookup(domain.SkinTypeNormal, nil, domain.GenderMale, 8)
	assert.Len(t, male, 3)
}

func TestCatalogLookup_TruncatesToMaxProducts(t *testing.T) {
	catalog := NewCatalogStore()

	products := catalog.Lookup(domain.SkinTypeSensitive, nil, domain.GenderAll, 1)

	assert.Len(t, products, 1)
}
