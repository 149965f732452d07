// Package query builds mongo filters and find options from list-endpoint
// query strings. One builder serves every listable collection.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reserved parameter names that never become field filters.
var reserved = map[string]bool{
	"searchTerm": true,
	"sort":       true,
	"page":       true,
	"limit":      true,
	"fields":     true,
}

const defaultLimit = 10

type Options struct {
	Filter bson.M
	Find   *options.FindOptions
	Page   int
	Limit  int
}

// Build assembles a filter and find options from query params.
//
// searchTerm does a case-insensitive regex $or over searchFields; every
// non-reserved param becomes an exact-match filter; sort takes a comma list
// of field names with a -prefix for descending (default -created_at);
// page/limit paginate; fields projects a comma list of fields.
func Build(params url.Values, searchFields []string) Options {
	filter := bson.M{"is_deleted": false}

	if term := params.Get("searchTerm"); term != "" && len(searchFields) > 0 {
		or := make([]bson.M, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: bson.M{"$regex": term, "$options": "i"}})
		}
		filter["$or"] = or
	}

	for key, values := range params {
		if reserved[key] || len(values) == 0 || values[0] == "" {
			continue
		}
		// is_deleted is owned by the builder; operator-shaped keys never
		// come from clients.
		if key == "is_deleted" || strings.HasPrefix(key, "$") {
			continue
		}
		filter[key] = coerce(values[0])
	}

	page := atoiDefault(params.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	limit := atoiDefault(params.Get("limit"), defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}

	findOpts := options.Find().
		SetSort(parseSort(params.Get("sort"))).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	if fields := params.Get("fields"); fields != "" {
		projection := bson.M{}
		for _, field := range strings.Split(fields, ",") {
			if field = strings.TrimSpace(field); field != "" {
				projection[field] = 1
			}
		}
		findOpts.SetProjection(projection)
	}

	return Options{Filter: filter, Find: findOpts, Page: page, Limit: limit}
}

func parseSort(sort string) bson.D {
	if sort == "" {
		sort = "-created_at"
	}
	out := bson.D{}
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		out = append(out, bson.E{Key: field, Value: order})
	}
	return out
}

// coerce turns id-shaped and boolean strings into their mongo-native types
// so exact filters match stored values.
func coerce(value string) interface{} {
	if id, err := primitive.ObjectIDFromHex(value); err == nil {
		return id
	}
	if value == "true" {
		return true
	}
	if value == "false" {
		return false
	}
	return value
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
