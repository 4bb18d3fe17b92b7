// Package search maintains the product index in Elasticsearch and serves
// the buyer-facing marketplace search. Indexing is best-effort: the
// database stays the source of truth and a failed index write never fails
// the originating mutation.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"evercraft/internal/common/logger"
	"evercraft/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrSearchFailed = errors.New("SEARCH_QUERY_FAILED")
	ErrIndexFailed  = errors.New("INDEX_WRITE_FAILED")
)

// ProductDocument is the denormalized shape stored in the index. The
// eco fields are flattened so buyers can filter on them directly.
type ProductDocument struct {
	ID               string `json:"id"`
	ShopID           string `json:"shopId"`
	ShopName         string `json:"shopName"`
	CategoryID       string `json:"categoryId"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	PriceCents       int64  `json:"priceCents"`
	EcoCompleteness  int    `json:"ecoCompleteness"`
	PlasticFree      bool   `json:"plasticFree"`
	OrganicMaterial  bool   `json:"organicMaterial"`
	RecycledMaterial bool   `json:"recycledMaterial"`
	LocalProduction  bool   `json:"localProduction"`
	SellerTier       string `json:"sellerTier"`
}

// Query is a marketplace search request.
type Query struct {
	Keywords        string
	CategoryID      string
	MinPriceCents   int64
	MaxPriceCents   int64
	PlasticFreeOnly bool
	MinEcoScore     int
	SortBy          string // "price_asc", "price_desc", "eco_score"
	From            int
	Size            int
}

type Result struct {
	Products  []ProductDocument `json:"products"`
	TotalHits int               `json:"totalHits"`
}

type Index struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndex(client *elasticsearch.Client, indexName string, log logger.Logger) *Index {
	return &Index{
		client: client,
		index:  indexName,
		logger: log.WithFields(map[string]interface{}{"component": "search", "index": indexName}),
	}
}

// IndexProduct writes or replaces the product document.
func (i *Index) IndexProduct(ctx context.Context, doc *ProductDocument) error {
	if i == nil || i.client == nil {
		return nil
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: marshal document: %v", ErrIndexFailed, err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: status %s", ErrIndexFailed, res.Status())
	}
	return nil
}

// DeleteProduct removes the document. A 404 is success: the product was
// never indexed or already gone.
func (i *Index) DeleteProduct(ctx context.Context, productID string) error {
	if i == nil || i.client == nil {
		return nil
	}
	req := esapi.DeleteRequest{
		Index:      i.index,
		DocumentID: productID,
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("%w: status %s", ErrIndexFailed, res.Status())
	}
	return nil
}

func (i *Index) Search(ctx context.Context, q Query) (*Result, error) {
	if i == nil || i.client == nil {
		return &Result{Products: []ProductDocument{}}, nil
	}
	if q.Size <= 0 || q.Size > 100 {
		q.Size = 20
	}

	body, err := json.Marshal(buildProductQuery(q))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal query: %v", ErrSearchFailed, err)
	}

	req := esapi.SearchRequest{
		Index: []string{i.index},
		Body:  strings.NewReader(string(body)),
		From:  &q.From,
		Size:  &q.Size,
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("%w: status %s", ErrSearchFailed, res.Status())
	}

	return parseSearchResponse(res.Body)
}

func buildProductQuery(q Query) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if q.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.Keywords,
				"fields": []string{"name^3", "description^2", "shopName"},
				"type":   "best_fields",
			},
		})
	}
	if q.CategoryID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"categoryId": q.CategoryID},
		})
	}
	if q.MinPriceCents > 0 || q.MaxPriceCents > 0 {
		priceRange := map[string]interface{}{}
		if q.MinPriceCents > 0 {
			priceRange["gte"] = q.MinPriceCents
		}
		if q.MaxPriceCents > 0 {
			priceRange["lte"] = q.MaxPriceCents
		}
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"priceCents": priceRange},
		})
	}
	if q.PlasticFreeOnly {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"plasticFree": true},
		})
	}
	if q.MinEcoScore > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"ecoCompleteness": map[string]interface{}{"gte": q.MinEcoScore},
			},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}

	switch q.SortBy {
	case "price_asc":
		query["sort"] = []map[string]interface{}{{"priceCents": "asc"}}
	case "price_desc":
		query["sort"] = []map[string]interface{}{{"priceCents": "desc"}}
	case "eco_score":
		query["sort"] = []map[string]interface{}{{"ecoCompleteness": "desc"}}
	}

	return query
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source ProductDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func parseSearchResponse(body io.Reader) (*Result, error) {
	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	products := make([]ProductDocument, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		products = append(products, hit.Source)
	}
	return &Result{
		Products:  products,
		TotalHits: resp.Hits.Total.Value,
	}, nil
}

// DocumentFor flattens a product and its eco profile into the indexed
// shape. A nil profile indexes with zeroed eco fields.
func DocumentFor(p *models.Product, eco *models.ProductEcoProfile, shopName, sellerTier string) *ProductDocument {
	doc := &ProductDocument{
		ID:          p.ID,
		ShopID:      p.ShopID,
		ShopName:    shopName,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		SellerTier:  sellerTier,
	}
	if eco != nil {
		doc.EcoCompleteness = eco.CompletenessPercent
		doc.PlasticFree = eco.PlasticFree
		doc.OrganicMaterial = eco.OrganicMaterial
		doc.RecycledMaterial = eco.RecycledMaterial
		doc.LocalProduction = eco.LocalProduction
	}
	return doc
}
