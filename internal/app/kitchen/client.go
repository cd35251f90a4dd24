package kitchen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"front-of-house/internal/domain"
)

type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{base: base, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *apiClient) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/menu", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch menu: status %d", resp.StatusCode)
	}
	var menu []domain.MenuItem
	if err := json.NewDecoder(resp.Body).Decode(&menu); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return menu, nil
}

func (c *apiClient) UpdateItemStatus(ctx context.Context, orderID string, index int, status string) error {
	body, _ := json.Marshal(domain.UpdateStatusRequest{Status: status})
	url := fmt.Sprintf("%s/orders/%s/items/%d/status", c.base, orderID, index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("update item status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update item status: status %d", resp.StatusCode)
	}
	return nil
}
