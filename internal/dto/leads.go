package dto

import "time"

// LeadListFilter contains query parameters for the unified lead list.
type LeadListFilter struct {
	SourceType string
	Status     string
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	ScoreMin   int
	ScoreMax   int
	Page       int
	PerPage    int
}

// ListMeta describes pagination of a list response.
type ListMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
