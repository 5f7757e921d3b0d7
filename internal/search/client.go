// Package search talks to the Azure Cognitive Search REST API. There is no
// official Go SDK for it; the two calls this service needs (query an index,
// run an indexer) are plain HTTP.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/models"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/domain/services"
)

const apiVersion = "2023-11-01"

// Client implements the DocumentIndex and IndexerAdmin ports against one
// search service.
type Client struct {
	endpoint string
	apiKey   string
	index    string
	indexer  string
	client   *http.Client
	logger   *slog.Logger
}

// Config holds the search service coordinates.
type Config struct {
	Endpoint string
	APIKey   string
	Index    string
	Indexer  string
}

// NewClient creates a search client.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		index:    cfg.Index,
		indexer:  cfg.Indexer,
		client:   httpClient,
		logger:   logger,
	}
}

type searchRequest struct {
	Search string `json:"search"`
	Filter string `json:"filter,omitempty"`
	Top    int    `json:"top"`
}

type searchResponse struct {
	Value []models.SearchDocument `json:"value"`
}

// Search queries the index. A nil CreatedAfter means a full scan; a set one
// becomes a "created_at gt <cursor>" filter. Results keep the index's
// delivery order, no re-sort.
func (c *Client) Search(ctx context.Context, q *services.DocumentQuery) ([]models.SearchDocument, error) {
	body := searchRequest{
		Search: "*",
		Top:    q.Top,
	}
	if q.CreatedAfter != nil {
		body.Filter = fmt.Sprintf("created_at gt %s", q.CreatedAfter.UTC().Format(time.RFC3339))
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", c.endpoint, c.index, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: consulta al índice: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: consulta al índice: estado %d: %s",
			domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: respuesta del índice: %v", domain.ErrUpstream, err)
	}

	c.logger.Debug("index queried",
		"filter", body.Filter,
		"top", body.Top,
		"returned", len(parsed.Value),
	)

	return parsed.Value, nil
}

// RunIndexer starts the named remote indexing job. The service answers 202
// when the run was accepted.
func (c *Client) RunIndexer(ctx context.Context) error {
	url := fmt.Sprintf("%s/indexers/%s/run?api-version=%s", c.endpoint, c.indexer, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("build indexer request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ejecución del indexador: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: ejecución del indexador: estado %d: %s",
			domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	c.logger.Info("indexer run accepted", "indexer", c.indexer)
	return nil
}
