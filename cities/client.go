package cities

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// northernDistricts are the sub-district names the business delivers to.
var northernDistricts = []string{
	"צפת",
	"כנרת",
	"יזרעאל",
	"עכו",
	"גולן",
	"נצרת",
}

// Client queries the government open-data city registry.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// record mirrors the datastore_search row shape. Field names in the
// registry are Hebrew.
type record struct {
	CityName string `json:"שם_ישוב"`
	District string `json:"שם_נפה"`
}

type searchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Records []record `json:"records"`
	} `json:"result"`
}

// NorthernCities fetches the full registry and returns the city names
// in the serviced northern sub-districts, sorted and de-duplicated.
func (c *Client) NorthernCities(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cities api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cities api returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode cities response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("cities api reported failure")
	}

	seen := map[string]bool{}
	var names []string
	for _, r := range parsed.Result.Records {
		if !isNorthern(r.District) {
			continue
		}
		name := strings.TrimSpace(r.CityName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func isNorthern(district string) bool {
	district = strings.TrimSpace(district)
	for _, d := range northernDistricts {
		if strings.Contains(district, d) {
			return true
		}
	}
	return false
}
