package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_AbsentAndSentinelValuesAreEquivalent(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "all", "undefined"} {
		pred, err := NewBuilder().
			ILike("city", raw).
			Equals("state", raw).
			Enum("status", raw, map[string]bool{"active": true}).
			MinNumber("priceMin", "price", raw).
			MinInt("bedrooms", "bedrooms", raw).
			Search(raw, "title", "description").
			Period("created_at", raw).
			Build()

		require.NoError(t, err, "sentinel %q must not fail", raw)
		assert.True(t, pred.Empty(), "sentinel %q must add no condition", raw)
	}
}

func TestBuilder_TextFiltersAreCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	pred, err := NewBuilder().ILike("city", "Spring").Build()
	require.NoError(t, err)

	conds := pred.Conds()
	require.Len(t, conds, 1)
	assert.Equal(t, "city ILIKE ?", conds[0].Expr)
	assert.Equal(t, []any{"%Spring%"}, conds[0].Args)
}

func TestBuilder_SearchExpandsToOrAcrossColumns(t *testing.T) {
	t.Parallel()

	pred, err := NewBuilder().Search("lake", "title", "description", "city").Build()
	require.NoError(t, err)

	conds := pred.Conds()
	require.Len(t, conds, 1)
	assert.Equal(t, "(title ILIKE ? OR description ILIKE ? OR city ILIKE ?)", conds[0].Expr)
	assert.Equal(t, []any{"%lake%", "%lake%", "%lake%"}, conds[0].Args)
}

func TestBuilder_IndependentDimensionsAreAndComposed(t *testing.T) {
	t.Parallel()

	pred, err := NewBuilder().
		Search("lake", "title", "description").
		MinNumber("priceMin", "price", "150").
		MinInt("bedrooms", "bedrooms", "2").
		Enum("status", "active", map[string]bool{"active": true}).
		Build()
	require.NoError(t, err)

	assert.Len(t, pred.Conds(), 4)
}

func TestBuilder_MalformedNumericsAreRejectedPerField(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder().
		MinNumber("priceMin", "price", "cheap").
		MaxNumber("priceMax", "price", "-10").
		MinInt("bedrooms", "bedrooms", "two").
		Build()

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "must be a number", buildErr.Fields["priceMin"])
	assert.Equal(t, "must not be negative", buildErr.Fields["priceMax"])
	assert.Equal(t, "must be an integer", buildErr.Fields["bedrooms"])
}

func TestBuilder_UnrecognizedEnumValuesAreDropped(t *testing.T) {
	t.Parallel()

	pred, err := NewBuilder().
		Enum("status", "active; DROP TABLE properties", map[string]bool{"active": true}).
		Enum("type", "castle", map[string]bool{"house": true}).
		Build()

	require.NoError(t, err)
	assert.True(t, pred.Empty())
}

func TestBuilder_NumericBoundsCarryParsedValues(t *testing.T) {
	t.Parallel()

	pred, err := NewBuilder().
		MinNumber("priceMin", "price", "150").
		MaxNumber("priceMax", "price", "300.5").
		Build()
	require.NoError(t, err)

	conds := pred.Conds()
	require.Len(t, conds, 2)
	assert.Equal(t, "price >= ?", conds[0].Expr)
	assert.Equal(t, []any{150.0}, conds[0].Args)
	assert.Equal(t, "price <= ?", conds[1].Expr)
	assert.Equal(t, []any{300.5}, conds[1].Args)
}

func TestBuilder_PeriodProducesCutoff(t *testing.T) {
	t.Parallel()

	pred, err := NewBuilder().Period("created_at", "week").Build()
	require.NoError(t, err)

	conds := pred.Conds()
	require.Len(t, conds, 1)
	assert.Equal(t, "created_at >= ?", conds[0].Expr)

	cutoff, ok := conds[0].Args[0].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), cutoff, time.Minute)
}

func TestBuilder_UnknownPeriodIsIgnored(t *testing.T) {
	t.Parallel()

	pred, err := NewBuilder().Period("created_at", "fortnight").Build()
	require.NoError(t, err)
	assert.True(t, pred.Empty())
}
