package utils

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination is the metadata block attached to every paginated response.
// Navigation URLs are only present when the corresponding page exists.
type Pagination struct {
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	TotalPages int     `json:"total_pages"`
	TotalItems int64   `json:"total_items"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	NextURL    *string `json:"next_url,omitempty"`
	PrevURL    *string `json:"prev_url,omitempty"`
}

// ClampPageParams normalizes raw query values: page floors at 1, per_page
// defaults to 10 and is capped at 100.
func ClampPageParams(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// Paginate counts the query, loads the requested window into dest and
// returns the metadata. The query must carry its model (built off
// DB.Model(...)). A page past the end yields an empty window rather than
// an error.
func Paginate(query *gorm.DB, page, perPage int, dest interface{}) (*Pagination, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	if err := query.Offset(offset).Limit(perPage).Find(dest).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// SetPageURLs fills next/prev navigation links relative to the request's
// base URL, carrying the page and per_page parameters.
func (p *Pagination) SetPageURLs(baseURL string) {
	if p.HasNext {
		u := fmt.Sprintf("%s?page=%d&per_page=%d", baseURL, p.Page+1, p.PerPage)
		p.NextURL = &u
	}
	if p.HasPrev {
		u := fmt.Sprintf("%s?page=%d&per_page=%d", baseURL, p.Page-1, p.PerPage)
		p.PrevURL = &u
	}
}
