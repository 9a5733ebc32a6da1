// Package search provides destination lookup for the trip form.
package search

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tripsee/internal/domain"
	"tripsee/internal/model"
)

// DefaultLatency stands in for a places API round trip.
const DefaultLatency = 400 * time.Millisecond

// Provider searches destinations by free text.
type Provider interface {
	Search(ctx context.Context, query string) ([]model.Destination, error)
}

//go:embed destinations.json
var catalogJSON []byte

// Catalog is a Provider over a fixed destination list.
type Catalog struct {
	destinations []model.Destination
	latency      time.Duration
}

// NewCatalog loads the bundled destination list.
func NewCatalog(latency time.Duration) (*Catalog, error) {
	var entries []destinationEntry
	if err := json.Unmarshal(catalogJSON, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode destination catalog: %w", err)
	}
	dests := make([]model.Destination, 0, len(entries))
	for _, e := range entries {
		dests = append(dests, e.toDestination())
	}
	return &Catalog{destinations: dests, latency: latency}, nil
}

// NewStaticCatalog builds a catalog over the given destinations.
func NewStaticCatalog(latency time.Duration, dests ...model.Destination) *Catalog {
	return &Catalog{destinations: dests, latency: latency}
}

// Search returns destinations whose name, address or country contains query,
// case-insensitively, in catalog order. An empty query returns no results.
func (c *Catalog) Search(ctx context.Context, query string) ([]model.Destination, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []model.Destination{}, nil
	}

	if err := c.wait(ctx); err != nil {
		return nil, domain.ServiceError{Op: "search", Msg: "search cancelled", Err: err}
	}

	results := make([]model.Destination, 0, 8)
	for _, d := range c.destinations {
		if matches(d, query) {
			results = append(results, d)
		}
	}
	return results, nil
}

// Lookup returns the destination with the given id.
func (c *Catalog) Lookup(id string) (model.Destination, error) {
	for _, d := range c.destinations {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Destination{}, domain.NotFoundError{Resource: "destination", ID: id}
}

func matches(d model.Destination, query string) bool {
	for _, field := range []string{d.Name, d.Address, d.Country} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (c *Catalog) wait(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// catalog file types

type destinationEntry struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Country     string      `json:"country"`
	Coordinates coordinates `json:"coordinates"`
	PlaceID     string      `json:"place_id"`
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (e destinationEntry) toDestination() model.Destination {
	return model.Destination{
		ID:      e.ID,
		Name:    e.Name,
		Address: e.Address,
		Country: e.Country,
		Coordinates: model.Coordinates{
			Lat: e.Coordinates.Latitude,
			Lng: e.Coordinates.Longitude,
		},
		PlaceID: e.PlaceID,
	}
}
