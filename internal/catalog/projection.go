package catalog

import (
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"skincat/models"
)

// ImageKind is the resource path segment of an image URL.
type ImageKind string

const (
	Thumbnail ImageKind = "thumbnail"
	FullImage ImageKind = "image"
)

// ListRecord is one entry of the product list response.
type ListRecord struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        int    `json:"price"`
	Ingredients  string `json:"ingredients"`
	MonthlySales int    `json:"monthlySales"`
	ImgURL       string `json:"imgUrl"`
}

// DetailRecord is the first entry of the product detail response.
type DetailRecord struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        int    `json:"price"`
	Gender       string `json:"gender"`
	Category     string `json:"category"`
	Ingredients  string `json:"ingredients"`
	MonthlySales int    `json:"monthlySales"`
	ImgURL       string `json:"imgUrl"`
}

// RecommendRecord is a recommended item trailing the detail record.
type RecommendRecord struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Price  int    `json:"price"`
	ImgURL string `json:"imgUrl"`
}

// DetailResponse encodes as a single JSON array: the detail record followed
// by the recommendations.
type DetailResponse struct {
	Detail          DetailRecord
	Recommendations []RecommendRecord
}

func (d DetailResponse) MarshalJSON() ([]byte, error) {
	entries := make([]any, 0, 1+len(d.Recommendations))
	entries = append(entries, d.Detail)
	for _, rec := range d.Recommendations {
		entries = append(entries, rec)
	}
	return json.Marshal(entries)
}

// ImageURL builds {base}/{kind}/{imageID}.jpg. Items without an image id get
// an empty URL.
func ImageURL(base string, kind ImageKind, imageID *string) string {
	if imageID == nil || *imageID == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + string(kind) + "/" + url.PathEscape(*imageID) + ".jpg"
}

func (p *Planner) listRecord(item models.Item) ListRecord {
	return ListRecord{
		ID:           item.ID,
		Name:         item.Name,
		Price:        item.Price,
		Ingredients:  item.Ingredients,
		MonthlySales: item.MonthlySales,
		ImgURL:       ImageURL(p.config.ResourceBaseURL, Thumbnail, item.ImageID),
	}
}

func (p *Planner) detailRecord(item models.Item) DetailRecord {
	return DetailRecord{
		ID:           item.ID,
		Name:         item.Name,
		Price:        item.Price,
		Gender:       item.Gender,
		Category:     item.Category,
		Ingredients:  item.Ingredients,
		MonthlySales: item.MonthlySales,
		ImgURL:       ImageURL(p.config.ResourceBaseURL, FullImage, item.ImageID),
	}
}

func (p *Planner) recommendRecord(item models.Item) RecommendRecord {
	return RecommendRecord{
		ID:     item.ID,
		Name:   item.Name,
		Price:  item.Price,
		ImgURL: ImageURL(p.config.ResourceBaseURL, Thumbnail, item.ImageID),
	}
}
