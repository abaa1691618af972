package dtos

import (
	"net/http"
	"strconv"

	"github.com/AbdellahHatouchi/property-management/internal/constants"
)

type HealthCheckResponse struct {
	Status string `json:"status"`
}

// Page is a limit/offset window read from ?page=&pageSize=.
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func (p Page) Limit() int  { return p.PageSize }
func (p Page) Offset() int { return (p.Page - 1) * p.PageSize }

// PageFromRequest clamps the query values to sane bounds.
func PageFromRequest(r *http.Request) Page {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(q.Get("pageSize"))
	if err != nil || size < 1 {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	return Page{Page: page, PageSize: size}
}

type PagedResponse[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
