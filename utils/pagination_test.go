package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestGetPageDefaults(t *testing.T) {
	page := GetPage(testContext(t, "/api/alerts"))
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Equal(t, 0, page.Offset())
}

func TestGetPageBounds(t *testing.T) {
	page := GetPage(testContext(t, "/api/alerts?page=0&page_size=-5"))
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, DefaultPageSize, page.Size)

	page = GetPage(testContext(t, "/api/alerts?page=3&page_size=500"))
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, MaxPageSize, page.Size)
	assert.Equal(t, 200, page.Offset())
}

func TestPaginateLinks(t *testing.T) {
	c := testContext(t, "/api/alerts?page=2&page_size=10")
	resp := Paginate(c, Page{Number: 2, Size: 10}, 35, []string{"a"})

	assert.Equal(t, 35, resp.Count)
	assert.Equal(t, "/api/alerts?page=3&page_size=10", resp.Next)
	assert.Equal(t, "/api/alerts?page=1&page_size=10", resp.Previous)
}

func TestPaginateEdges(t *testing.T) {
	c := testContext(t, "/api/alerts")
	resp := Paginate(c, Page{Number: 1, Size: 20}, 15, nil)
	assert.Empty(t, resp.Next)
	assert.Empty(t, resp.Previous)

	resp = Paginate(c, Page{Number: 1, Size: 20}, 20, nil)
	assert.Empty(t, resp.Next)
}
