package models

import (
	"fmt"
	"strings"
)

// PageSize is the fixed number of catalog entries per page
const PageSize = 50

// CatalogStub is the minimal identifying record of one entity in the catalog index
type CatalogStub struct {
	SequenceIndex int    `json:"sequenceIndex"` // 1-based position in the upstream index
	Name          string `json:"name"`
	Locator       string `json:"locator"` // URL of the full upstream record
}

// DetailRecord is a CatalogStub resolved into a display-ready card
type DetailRecord struct {
	SequenceIndex int      `json:"sequenceIndex"`
	Name          string   `json:"name"`
	Categories    []string `json:"categories"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Weight        int      `json:"weight"`
}

// SortMode selects the ordering applied by the view pipeline
type SortMode string

const (
	SortIndexAsc  SortMode = "index-asc"
	SortIndexDesc SortMode = "index-desc"
	SortAlphaAsc  SortMode = "alpha-asc"
	SortAlphaDesc SortMode = "alpha-desc"
)

// ParseSortMode normalizes a sort key. The short keys used by the web client
// (num-asc, num-desc, az, za) are accepted as aliases. Empty means index-asc.
func ParseSortMode(raw string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "index-asc", "num-asc":
		return SortIndexAsc, nil
	case "index-desc", "num-desc":
		return SortIndexDesc, nil
	case "alpha-asc", "az":
		return SortAlphaAsc, nil
	case "alpha-desc", "za":
		return SortAlphaDesc, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", raw)
}

// ViewState is everything the view pipeline needs to derive one page
type ViewState struct {
	SearchText     string   `json:"search"`
	SortMode       SortMode `json:"sort"`
	CategoryFilter string   `json:"type,omitempty"`
	PageNumber     int      `json:"page"`
}

// DefaultViewState returns the state of a freshly opened catalog
func DefaultViewState() ViewState {
	return ViewState{
		SortMode:   SortIndexAsc,
		PageNumber: 1,
	}
}

// Page is one computed window of the catalog
type Page struct {
	Records    []DetailRecord `json:"records"`
	PageNumber int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	MatchCount int            `json:"matchCount"` // entries matching the search, before windowing
}
