package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Client talks to Elasticsearch over its REST API.
type Client struct {
	BaseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL}
}

func (c *Client) index(ctx context.Context, index, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"PUT",
		fmt.Sprintf("%s/%s/_doc/%s", c.BaseURL, index, id),
		bytes.NewBuffer(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to index %s/%s: %s", index, id, resp.Status)
	}
	return nil
}

// Search runs a query-string search and returns the raw hit sources.
func (c *Client) Search(ctx context.Context, index, query string) ([]map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET",
		fmt.Sprintf("%s/%s/_search?q=%s", c.BaseURL, index, url.QueryEscape(query)),
		nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	hits := []map[string]interface{}{}
	if h, ok := result["hits"].(map[string]interface{}); ok {
		if inner, ok := h["hits"].([]interface{}); ok {
			for _, item := range inner {
				if m, ok := item.(map[string]interface{}); ok {
					if src, ok := m["_source"].(map[string]interface{}); ok {
						hits = append(hits, src)
					}
				}
			}
		}
	}

	return hits, nil
}
