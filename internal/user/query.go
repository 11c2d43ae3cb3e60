package user

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Sort keys accepted by the list view.
const (
	SortName      = "name"
	SortEmail     = "email"
	SortLocation  = "location"
	SortAge       = "age"
	SortGender    = "gender"
	SortCreatedAt = "createdAt"
)

var sortKeys = map[string]bool{
	SortName:      true,
	SortEmail:     true,
	SortLocation:  true,
	SortAge:       true,
	SortGender:    true,
	SortCreatedAt: true,
}

// PageSizes are the page sizes offered by the list view.
var PageSizes = []int{5, 10, 25, 50}

// DateLayout renders createdAt the way the table shows it and the way the
// search box matches it.
const DateLayout = "1/2/2006"

// Query is the list view state: search term, sort, and page window.
// Page is zero-based.
type Query struct {
	Search    string
	SortKey   string
	SortOrder SortOrder
	Page      int
	PageSize  int
}

// Normalize replaces unknown or out-of-range values with defaults.
func (q Query) Normalize(defaultSize int) Query {
	if !sortKeys[q.SortKey] {
		q.SortKey = SortName
	}
	if q.SortOrder != Desc {
		q.SortOrder = Asc
	}
	if q.Page < 0 {
		q.Page = 0
	}
	if !validPageSize(q.PageSize) {
		q.PageSize = defaultSize
	}
	return q
}

// Encode renders q as URL query parameters understood by ParseQuery.
func (q Query) Encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	v.Set("sort", q.SortKey)
	v.Set("order", string(q.SortOrder))
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.PageSize))
	return v.Encode()
}

// ParseQuery reads the list state from URL query parameters. Missing or
// malformed values are left zero for Normalize to fill in.
func ParseQuery(values url.Values) Query {
	q := Query{
		Search:    values.Get("q"),
		SortKey:   values.Get("sort"),
		SortOrder: SortOrder(values.Get("order")),
	}
	q.Page, _ = strconv.Atoi(values.Get("page"))
	q.PageSize, _ = strconv.Atoi(values.Get("size"))
	return q
}

func validPageSize(n int) bool {
	for _, size := range PageSizes {
		if size == n {
			return true
		}
	}
	return false
}

// ParseTime parses a store timestamp. Stores emit RFC3339 with or without
// fractional seconds.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a createdAt value as a short local date, or "" when it
// is missing or unparseable.
func FormatDate(createdAt string, loc *time.Location) string {
	t, ok := ParseTime(createdAt)
	if !ok {
		return ""
	}
	return t.In(loc).Format(DateLayout)
}

// Matches reports whether u matches the search term. Name, email and
// location match case-insensitively; age and the rendered date must contain
// the term verbatim.
func Matches(u User, term string, loc *time.Location) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(u.Name), lower) ||
		strings.Contains(strings.ToLower(u.Email), lower) ||
		strings.Contains(strings.ToLower(u.Location), lower) {
		return true
	}
	if u.Age != "" && strings.Contains(u.Age, term) {
		return true
	}
	if date := FormatDate(u.CreatedAt, loc); date != "" && strings.Contains(date, term) {
		return true
	}
	return false
}

// Filter returns the records matching term, in input order.
func Filter(users []User, term string, loc *time.Location) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if Matches(u, term, loc) {
			out = append(out, u)
		}
	}
	return out
}

func sortValue(u User, key string) string {
	switch key {
	case SortName:
		return u.Name
	case SortEmail:
		return u.Email
	case SortLocation:
		return u.Location
	case SortAge:
		return u.Age
	case SortGender:
		return u.Gender
	case SortCreatedAt:
		return u.CreatedAt
	}
	return ""
}

func compareValues(key, a, b string) int {
	switch key {
	case SortAge:
		x, errX := strconv.ParseFloat(a, 64)
		y, errY := strconv.ParseFloat(b, 64)
		if errX == nil && errY == nil {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case SortCreatedAt:
		x, okX := ParseTime(a)
		y, okY := ParseTime(b)
		if okX && okY {
			return x.Compare(y)
		}
	}
	return strings.Compare(a, b)
}

// Sort orders users in place by key. Records missing the key always come
// after records that have it, whatever the direction.
func Sort(users []User, key string, order SortOrder) {
	sort.SliceStable(users, func(i, j int) bool {
		a, b := sortValue(users[i], key), sortValue(users[j], key)
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		c := compareValues(key, a, b)
		if order == Desc {
			return c > 0
		}
		return c < 0
	})
}

// Page is one window of a filtered and sorted collection.
type Page struct {
	Items []User `json:"items"`
	Index int    `json:"page"`
	Size  int    `json:"size"`
	Total int    `json:"total"`
	Pages int    `json:"pages"`
}

// PageCount is the number of pages needed for total records.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate slices users into the page at index. An index past the last page
// yields an empty page; callers that want to avoid that clamp first with
// ClampPage.
func Paginate(users []User, index, size int) Page {
	p := Page{Index: index, Size: size, Total: len(users), Pages: PageCount(len(users), size)}
	if size <= 0 || index < 0 {
		p.Items = []User{}
		return p
	}
	start := index * size
	if start >= len(users) {
		p.Items = []User{}
		return p
	}
	end := start + size
	if end > len(users) {
		end = len(users)
	}
	p.Items = users[start:end]
	return p
}

// ClampPage moves a stale page index onto the last valid page.
func ClampPage(index, total, size int) int {
	last := PageCount(total, size) - 1
	if last < 0 {
		return 0
	}
	if index > last {
		return last
	}
	if index < 0 {
		return 0
	}
	return index
}

// Apply runs the full list pipeline: filter, sort, clamp, paginate.
func Apply(users []User, q Query, loc *time.Location) Page {
	filtered := Filter(users, q.Search, loc)
	Sort(filtered, q.SortKey, q.SortOrder)
	return Paginate(filtered, ClampPage(q.Page, len(filtered), q.PageSize), q.PageSize)
}
