package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildDefaults(t *testing.T) {
	opts := Build(url.Values{}, nil)

	assert.Equal(t, bson.M{"is_deleted": false}, opts.Filter)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, defaultLimit, opts.Limit)
	assert.Equal(t, int64(0), *opts.Find.Skip)
	assert.Equal(t, int64(defaultLimit), *opts.Find.Limit)
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, opts.Find.Sort)
}

func TestBuildSearchTerm(t *testing.T) {
	params := url.Values{"searchTerm": {"golang"}}
	opts := Build(params, []string{"title", "description"})

	or, ok := opts.Filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"$regex": "golang", "$options": "i"}, or[0]["title"])
	assert.Equal(t, bson.M{"$regex": "golang", "$options": "i"}, or[1]["description"])

	// No search fields, no $or even when a term is present.
	opts = Build(params, nil)
	assert.NotContains(t, opts.Filter, "$or")
}

func TestBuildFieldFilterCoercion(t *testing.T) {
	id := primitive.NewObjectID()
	params := url.Values{
		"instructor":   {id.Hex()},
		"is_completed": {"true"},
		"category":     {"web-development"},
		"empty":        {""},
	}
	opts := Build(params, nil)

	assert.Equal(t, id, opts.Filter["instructor"])
	assert.Equal(t, true, opts.Filter["is_completed"])
	assert.Equal(t, "web-development", opts.Filter["category"])
	assert.NotContains(t, opts.Filter, "empty")
}

func TestBuildRejectsUnsafeParams(t *testing.T) {
	opts := Build(url.Values{
		"is_deleted": {"true"},
		"$where":     {"sleep(1000)"},
		"$or":        {"[]"},
	}, nil)

	// Soft-delete exclusion survives, operator keys never reach the filter.
	assert.Equal(t, bson.M{"is_deleted": false}, opts.Filter)
}

func TestBuildReservedParamsNotFilters(t *testing.T) {
	params := url.Values{
		"sort":   {"title"},
		"page":   {"2"},
		"limit":  {"5"},
		"fields": {"title"},
	}
	opts := Build(params, nil)

	assert.Equal(t, bson.M{"is_deleted": false}, opts.Filter)
}

func TestBuildSort(t *testing.T) {
	opts := Build(url.Values{"sort": {"price,-created_at"}}, nil)
	assert.Equal(t, bson.D{
		{Key: "price", Value: 1},
		{Key: "created_at", Value: -1},
	}, opts.Find.Sort)
}

func TestBuildPagination(t *testing.T) {
	opts := Build(url.Values{"page": {"3"}, "limit": {"20"}}, nil)
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 20, opts.Limit)
	assert.Equal(t, int64(40), *opts.Find.Skip)
	assert.Equal(t, int64(20), *opts.Find.Limit)

	// Garbage falls back to defaults.
	opts = Build(url.Values{"page": {"zero"}, "limit": {"-4"}}, nil)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, defaultLimit, opts.Limit)
}

func TestBuildProjection(t *testing.T) {
	opts := Build(url.Values{"fields": {"title, price"}}, nil)
	assert.Equal(t, bson.M{"title": 1, "price": 1}, opts.Find.Projection)
}
