package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage_Defaults(t *testing.T) {
	t.Parallel()

	pg := ParsePage("", "", 20)
	assert.Equal(t, 1, pg.Page)
	assert.Equal(t, 20, pg.Limit)
	assert.Equal(t, 0, pg.Offset)
}

func TestParsePage_NonNumericAndSubOneFallBack(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"abc", "0", "-3", "1.5"} {
		pg := ParsePage(raw, raw, 10)
		assert.Equal(t, 1, pg.Page, "page %q", raw)
		assert.Equal(t, 10, pg.Limit, "limit %q", raw)
	}
}

func TestParsePage_OffsetAndClamp(t *testing.T) {
	t.Parallel()

	pg := ParsePage("3", "25", 10)
	assert.Equal(t, 50, pg.Offset)
	assert.Equal(t, 25, pg.Limit)

	clamped := ParsePage("1", "5000", 10)
	assert.Equal(t, MaxLimit, clamped.Limit)
}

func TestPages_CeilDivision(t *testing.T) {
	t.Parallel()

	pg := ParsePage("1", "10", 10)
	assert.Equal(t, 0, pg.Pages(0))
	assert.Equal(t, 1, pg.Pages(1))
	assert.Equal(t, 1, pg.Pages(10))
	assert.Equal(t, 2, pg.Pages(11))
	assert.Equal(t, 3, pg.Pages(25))
}

func TestOrder_FallsBackForUnknownKeys(t *testing.T) {
	t.Parallel()

	allowed := map[string]string{
		"newest":     "created_at DESC",
		"oldest":     "created_at ASC",
		"price-high": "price DESC",
	}

	assert.Equal(t, "price DESC", Order("price-high", allowed, "newest"))
	assert.Equal(t, "created_at DESC", Order("rating; DROP TABLE", allowed, "newest"))
	assert.Equal(t, "created_at DESC", Order("", allowed, "newest"))
}
