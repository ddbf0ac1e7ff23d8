package domain

// PageQuery carries the pagination and sort parameters shared by every
// list endpoint. Zero or negative page/limit values are clamped by
// Normalize, never rejected.
type PageQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize clamps page/limit to their defaults and fills in the default
// sort field when none was requested.
func (q *PageQuery) Normalize(defaultSort string) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.SortBy == "" {
		q.SortBy = defaultSort
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}
}

// Skip returns the number of documents to skip for the current page.
func (q PageQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// Pagination is the metadata block returned alongside every list page.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination derives pagination metadata from a normalized query, the
// number of documents actually returned, and the total match count.
// totalPages is 0 iff total is 0; an empty page is not an error.
func NewPagination(q PageQuery, returned int, total int64) Pagination {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return Pagination{
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     int64(q.Skip()+returned) < total,
		HasPrev:     q.Page > 1,
	}
}

// Bucket is one row of a grouped breakdown: the group key and its count.
// AvgRating is only populated by breakdowns that compute it.
type Bucket struct {
	Key       string   `bson:"_id" json:"key"`
	Count     int64    `bson:"count" json:"count"`
	AvgRating *float64 `bson:"avgRating,omitempty" json:"avgRating,omitempty"`
}
