package mongodb

import (
	"context"
	"regexp"

	"go-skillmarket-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Filter composes AND-ed clauses from recognized list parameters. Each
// With* method silently skips empty values, so absent query parameters
// never contribute a clause and unknown parameters are ignored by
// construction.
type Filter struct {
	clauses []bson.M
}

// NewFilter starts from a base clause, typically the status gate every
// list endpoint applies.
func NewFilter(base bson.M) *Filter {
	f := &Filter{}
	if len(base) > 0 {
		f.clauses = append(f.clauses, base)
	}
	return f
}

// Text adds a full-text search clause backed by the collection's text
// index.
func (f *Filter) Text(search string) *Filter {
	if search != "" {
		f.clauses = append(f.clauses, bson.M{"$text": bson.M{"$search": search}})
	}
	return f
}

// Eq adds an exact-match clause, used for enum-valued fields.
func (f *Filter) Eq(field, value string) *Filter {
	if value != "" {
		f.clauses = append(f.clauses, bson.M{field: value})
	}
	return f
}

// EqBool adds a boolean clause when the parameter is the literal "true".
func (f *Filter) EqBool(field, value string) *Filter {
	if value == "true" {
		f.clauses = append(f.clauses, bson.M{field: true})
	}
	return f
}

// Regex adds a case-insensitive substring clause for free-text fields
// not covered by the text index.
func (f *Filter) Regex(field, value string) *Filter {
	if value != "" {
		f.clauses = append(f.clauses, bson.M{field: ciRegex(value)})
	}
	return f
}

// RegexAny adds an OR over case-insensitive substring matches across
// several fields.
func (f *Filter) RegexAny(fields []string, value string) *Filter {
	if value == "" {
		return f
	}
	or := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: ciRegex(value)})
	}
	f.clauses = append(f.clauses, bson.M{"$or": or})
	return f
}

// LTE adds a field ≤ value clause.
func (f *Filter) LTE(field string, value float64) *Filter {
	f.clauses = append(f.clauses, bson.M{field: bson.M{"$lte": value}})
	return f
}

// GTE adds a field ≥ value clause.
func (f *Filter) GTE(field string, value float64) *Filter {
	f.clauses = append(f.clauses, bson.M{field: bson.M{"$gte": value}})
	return f
}

// Add appends a raw clause for conditions the helpers do not cover.
func (f *Filter) Add(clause bson.M) *Filter {
	if len(clause) > 0 {
		f.clauses = append(f.clauses, clause)
	}
	return f
}

// Build collapses the clauses into a single query document. Clauses are
// combined with $and so repeated operators on one field never clobber
// each other.
func (f *Filter) Build() bson.M {
	switch len(f.clauses) {
	case 0:
		return bson.M{}
	case 1:
		return f.clauses[0]
	default:
		return bson.M{"$and": f.clauses}
	}
}

func ciRegex(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}

// sortDoc maps sortBy/sortOrder to a mongo sort document with _id as the
// tie-break so equal keys page deterministically.
func sortDoc(q domain.PageQuery) bson.D {
	order := 1
	if q.SortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: q.SortBy, Value: order}, {Key: "_id", Value: order}}
}

// findPage runs the composed filter with sort/skip/limit and counts the
// total match set without them, returning both for pagination metadata.
func findPage(ctx context.Context, coll *mongo.Collection, filter bson.M, q domain.PageQuery, results interface{}) (int64, error) {
	opts := options.Find().
		SetSort(sortDoc(q)).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, err
	}
	if err := cursor.All(ctx, results); err != nil {
		return 0, err
	}

	return coll.CountDocuments(ctx, filter)
}

// groupCount runs a count group-by over match, sorted count descending
// with the group key as deterministic tie-break.
func groupCount(ctx context.Context, coll *mongo.Collection, match bson.M, field string) ([]domain.Bucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	buckets := []domain.Bucket{}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}
