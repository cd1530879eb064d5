package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveOn(t *testing.T, target string) Paging {
	t.Helper()

	app := fiber.New()
	var got Paging
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePaging_Defaults(t *testing.T) {
	p := resolveOn(t, "/items")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestResolvePaging_CapsPerPage(t *testing.T) {
	p := resolveOn(t, "/items?page=3&per_page=500")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 200, p.Offset)
}

func TestResolvePaging_LimitAlias(t *testing.T) {
	p := resolveOn(t, "/items?limit=5")
	assert.Equal(t, 5, p.PerPage)
}

func TestResolvePaging_NonsenseFallsBack(t *testing.T) {
	p := resolveOn(t, "/items?page=-2&per_page=abc")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestBuildPagination(t *testing.T) {
	pg := BuildPagination(45, Paging{Page: 2, PerPage: 20}, 20)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)
	assert.Equal(t, 20, pg.Count)

	last := BuildPagination(45, Paging{Page: 3, PerPage: 20}, 5)
	assert.False(t, last.HasNext)
}
