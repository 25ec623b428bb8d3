// Package search maintains the optional full-text product index. The index
// is a derived view over the relational store: it only changes through
// explicit sync/index/delete calls and may lag behind the store between
// them.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/olivere/elastic/v7"

	"trendline/models"
)

const searchSize = 20

// ProductDocument is the indexed projection of a product
type ProductDocument struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	FinalPrice  float64 `json:"final_price"`
	Gender      string  `json:"gender"`
	BrandID     uint    `json:"brand_id"`
	CategoryID  uint    `json:"category_id"`
}

// Query carries the full-text search request. Query text is required;
// every other field is an optional narrowing filter.
type Query struct {
	Text       string
	Fuzzy      bool
	CategoryID *uint
	BrandID    *uint
	PriceMin   *float64
	PriceMax   *float64
	SortBy     string
}

// Sort orders accepted by Search
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ProductIndex is the full-text index component
type ProductIndex interface {
	Sync(ctx context.Context, products []models.Product) error
	Index(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query Query) ([]ProductDocument, error)
}

type elasticIndex struct {
	client *elastic.Client
	index  string
}

// NewElasticIndex connects to Elasticsearch and ensures the index exists.
// Returns an error when the cluster is unreachable; callers treat that as
// "search unavailable" rather than fatal.
func NewElasticIndex(url, index string) (ProductIndex, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.IndexExists(index).Do(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		if _, err := client.CreateIndex(index).Do(ctx); err != nil {
			return nil, err
		}
	}

	return &elasticIndex{client: client, index: index}, nil
}

// NewDocument builds the indexed projection of a product
func NewDocument(p *models.Product) ProductDocument {
	return ProductDocument{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		FinalPrice:  p.FinalPrice(),
		Gender:      p.Gender.String(),
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
	}
}

// Sync bulk-replaces the documents for the given products
func (e *elasticIndex) Sync(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	bulk := e.client.Bulk().Index(e.index)
	for i := range products {
		doc := NewDocument(&products[i])
		bulk.Add(elastic.NewBulkIndexRequest().
			Id(strconv.FormatUint(uint64(doc.ID), 10)).
			Doc(doc))
	}

	resp, err := bulk.Do(ctx)
	if err != nil {
		return err
	}
	if resp.Errors {
		return errors.New("bulk index reported failed items")
	}
	return nil
}

func (e *elasticIndex) Index(ctx context.Context, product *models.Product) error {
	doc := NewDocument(product)
	_, err := e.client.Index().
		Index(e.index).
		Id(strconv.FormatUint(uint64(doc.ID), 10)).
		BodyJson(doc).
		Do(ctx)
	return err
}

// Delete removes a document; a missing document is not an error
func (e *elasticIndex) Delete(ctx context.Context, id uint) error {
	_, err := e.client.Delete().
		Index(e.index).
		Id(strconv.FormatUint(uint64(id), 10)).
		Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return err
}

func (e *elasticIndex) Search(ctx context.Context, query Query) ([]ProductDocument, error) {
	match := elastic.NewMultiMatchQuery(query.Text, "name", "description")
	if query.Fuzzy {
		match = match.Fuzziness("AUTO")
	}

	bq := elastic.NewBoolQuery().Must(match)
	if query.CategoryID != nil {
		bq = bq.Filter(elastic.NewTermQuery("category_id", *query.CategoryID))
	}
	if query.BrandID != nil {
		bq = bq.Filter(elastic.NewTermQuery("brand_id", *query.BrandID))
	}
	if query.PriceMin != nil || query.PriceMax != nil {
		rangeQuery := elastic.NewRangeQuery("price")
		if query.PriceMin != nil {
			rangeQuery = rangeQuery.Gte(*query.PriceMin)
		}
		if query.PriceMax != nil {
			rangeQuery = rangeQuery.Lte(*query.PriceMax)
		}
		bq = bq.Filter(rangeQuery)
	}

	svc := e.client.Search().Index(e.index).Query(bq).Size(searchSize)
	switch query.SortBy {
	case SortPriceAsc:
		svc = svc.Sort("price", true)
	case SortPriceDesc:
		svc = svc.Sort("price", false)
	}

	result, err := svc.Do(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]ProductDocument, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var doc ProductDocument
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
