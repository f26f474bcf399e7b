package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page holds the resolved pagination parameters of a list request.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// GetPage reads ?page and ?page_size query parameters with sane bounds.
func GetPage(c *gin.Context) Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: page, Size: size}
}

// PaginatedResponse is the standard list envelope.
type PaginatedResponse struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  any    `json:"results"`
}

// Paginate builds the list envelope, deriving next/previous links from the
// request path.
func Paginate(c *gin.Context, page Page, total int, results any) PaginatedResponse {
	resp := PaginatedResponse{Count: total, Results: results}

	path := c.Request.URL.Path
	if page.Offset()+page.Size < total {
		resp.Next = fmt.Sprintf("%s?page=%d&page_size=%d", path, page.Number+1, page.Size)
	}
	if page.Number > 1 {
		resp.Previous = fmt.Sprintf("%s?page=%d&page_size=%d", path, page.Number-1, page.Size)
	}
	return resp
}
