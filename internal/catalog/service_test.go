package catalog

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skincat/models"
)

// memStore evaluates plans in memory.
type memStore struct {
	items []models.Item
}

func (m *memStore) ListItems(_ context.Context, plan Plan) ([]models.Item, error) {
	var out []models.Item
	for _, item := range m.sorted(plan.SkinType) {
		if plan.Category != nil && !strings.EqualFold(item.Category, *plan.Category) {
			continue
		}
		if !plan.Exclude.Match(item, plan.MatchMode) || !plan.Include.Match(item, plan.MatchMode) {
			continue
		}
		out = append(out, item)
	}
	if plan.Offset >= len(out) {
		return nil, nil
	}
	end := min(plan.Offset+plan.Limit, len(out))
	return out[plan.Offset:end], nil
}

func (m *memStore) FindItem(_ context.Context, id int64) (models.Item, error) {
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Item{}, ErrNotFound
}

func (m *memStore) Recommend(_ context.Context, q RecommendQuery) ([]models.Item, error) {
	var out []models.Item
	for _, item := range m.sorted(q.SkinType) {
		if item.Category != q.Category || item.ID == q.ExcludeID {
			continue
		}
		out = append(out, item)
		if len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) sorted(skin SkinType) []models.Item {
	items := append([]models.Item(nil), m.items...)
	sort.SliceStable(items, func(i, j int) bool { return skin.Less(items[i], items[j]) })
	return items
}

func image(id string) *string { return &id }

func testItems() []models.Item {
	return []models.Item{
		{ID: 1, Name: "Toner", Price: 12000, Category: "skincare", Ingredients: "Glycerin,Alcohol", DryScore: 0, ImageID: image("t1")},
		{ID: 2, Name: "Cream", Price: 25000, Category: "skincare", Ingredients: "Ceramide,Glycerin", DryScore: 3, ImageID: image("c2")},
		{ID: 3, Name: "Serum", Price: 18000, Category: "skincare", Ingredients: "Ceramide", DryScore: 2, ImageID: image("s3")},
		{ID: 4, Name: "Essence", Price: 15000, Category: "skincare", Ingredients: "Glycerin", DryScore: 2, ImageID: image("e4")},
		{ID: 5, Name: "Balm", Price: 9000, Category: "skincare", Ingredients: "Glycerine-X", DryScore: 1, ImageID: image("b5")},
		{ID: 6, Name: "Sun Stick", Price: 15000, Category: "suncare", Ingredients: "Zinc Oxide", DryScore: 1, ImageID: image("s6")},
	}
}

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	svc, err := NewService(&memStore{items: testItems()}, cfg)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRejectsNilStore(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil, DefaultConfig())
	require.Error(t, err)
}

func TestProductsSortsByAxisThenPrice(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, DefaultConfig())
	records, err := svc.Products(context.Background(), url.Values{ParamSkinType: {"dry"}})
	require.NoError(t, err)

	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []int64{2, 4, 3, 5, 6, 1}, ids)
	assert.Equal(t, DefaultResourceBaseURL+"thumbnail/c2.jpg", records[0].ImgURL)
}

func TestProductsCategoryIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, DefaultConfig())
	lower, err := svc.Products(context.Background(), url.Values{ParamSkinType: {"oily"}, ParamCategory: {"suncare"}})
	require.NoError(t, err)
	upper, err := svc.Products(context.Background(), url.Values{ParamSkinType: {"oily"}, ParamCategory: {"SUNCARE"}})
	require.NoError(t, err)

	require.Len(t, lower, 1)
	assert.Equal(t, lower, upper)
}

func TestProductsIngredientFilters(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, DefaultConfig())
	ctx := context.Background()

	excluded, err := svc.Products(ctx, url.Values{ParamSkinType: {"dry"}, ParamExcludeIngredient: {"Alcohol,Ceramide"}})
	require.NoError(t, err)
	assert.Len(t, excluded, 3)

	included, err := svc.Products(ctx, url.Values{ParamSkinType: {"dry"}, ParamIncludeIngredient: {"Glycerin"}})
	require.NoError(t, err)
	assert.Len(t, included, 4, "substring matching keeps Glycerine-X")

	tokenCfg := DefaultConfig()
	tokenCfg.IngredientMatch = MatchToken
	tokenSvc := newTestService(t, tokenCfg)
	tokenIncluded, err := tokenSvc.Products(ctx, url.Values{ParamSkinType: {"dry"}, ParamIncludeIngredient: {"Glycerin"}})
	require.NoError(t, err)
	assert.Len(t, tokenIncluded, 3)
}

func TestProductsPagination(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.PageSize = 4
	svc := newTestService(t, cfg)
	ctx := context.Background()

	first, err := svc.Products(ctx, url.Values{ParamSkinType: {"dry"}})
	require.NoError(t, err)
	assert.Len(t, first, 4)

	second, err := svc.Products(ctx, url.Values{ParamSkinType: {"dry"}, ParamPage: {"1"}})
	require.NoError(t, err)
	assert.Len(t, second, 2)

	beyond, err := svc.Products(ctx, url.Values{ParamSkinType: {"dry"}, ParamPage: {"9"}})
	require.NoError(t, err)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestProductsValidatesBeforeQuerying(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, DefaultConfig())
	_, err := svc.Products(context.Background(), url.Values{})
	require.ErrorIs(t, err, ErrMissingSkinType)

	_, err = svc.Products(context.Background(), url.Values{ParamSkinType: {"xxxx"}})
	require.ErrorIs(t, err, ErrInvalidSkinType)
}

func TestProductDetailWithRecommendations(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, DefaultConfig())
	resp, err := svc.Product(context.Background(), "3", url.Values{ParamSkinType: {"dry"}})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Detail.ID)
	assert.Equal(t, "skincare", resp.Detail.Category)
	assert.Equal(t, DefaultResourceBaseURL+"image/s3.jpg", resp.Detail.ImgURL)

	ids := []int64{}
	for _, rec := range resp.Recommendations {
		ids = append(ids, rec.ID)
		assert.Contains(t, rec.ImgURL, "/thumbnail/")
	}
	assert.Equal(t, []int64{2, 4, 5}, ids)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 4)
	assert.Contains(t, entries[0], "gender")
	assert.Contains(t, entries[0], "category")
	assert.NotContains(t, entries[1], "ingredients")
}

func TestProductDetailErrors(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, DefaultConfig())
	ctx := context.Background()

	_, err := svc.Product(ctx, "xxx", url.Values{ParamSkinType: {"dry"}})
	assert.ErrorIs(t, err, ErrInvalidItemID)

	_, err = svc.Product(ctx, "3", url.Values{})
	assert.ErrorIs(t, err, ErrMissingSkinType)

	_, err = svc.Product(ctx, "3", url.Values{ParamSkinType: {"xxxx"}})
	assert.ErrorIs(t, err, ErrInvalidSkinType)

	_, err = svc.Product(ctx, "999", url.Values{ParamSkinType: {"dry"}})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsClientError(err))
}

func TestProductRecommendationsDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RecommendLimit = 0
	svc := newTestService(t, cfg)

	resp, err := svc.Product(context.Background(), "6", url.Values{ParamSkinType: {"oily"}})
	require.NoError(t, err)
	assert.Empty(t, resp.Recommendations)
}
