package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/flogin/internal/models"
)

// Index mirrors products into an Elasticsearch index for full-text search.
// The database stays the source of truth.
type Index struct {
	Client *elasticsearch.Client
	Name   string
}

func docID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (i *Index) ProductChanged(ctx context.Context, ev models.ProductEvent) error {
	if ev.Type == models.ProductDeleted {
		return i.Delete(ctx, ev.ProductID)
	}
	if ev.Product == nil {
		return nil
	}
	return i.Put(ctx, *ev.Product)
}

func (i *Index) Put(ctx context.Context, p models.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("elasticsearch: marshal product %d: %w", p.ID, err)
	}

	res, err := i.Client.Index(
		i.Name,
		bytes.NewReader(body),
		i.Client.Index.WithDocumentID(docID(p.ID)),
		i.Client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: index product %d: %w", p.ID, err)
	}
	return checkResponse(res, "index product")
}

// Delete removes the document; a document that is already gone is not an error.
func (i *Index) Delete(ctx context.Context, id uint) error {
	res, err := i.Client.Delete(
		i.Name,
		docID(id),
		i.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: delete product %d: %w", id, err)
	}
	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil
	}
	return checkResponse(res, "delete product")
}

func checkResponse(res *esapi.Response, op string) error {
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("elasticsearch: %s: %s: %s", op, res.Status(), body)
	}
	return nil
}
