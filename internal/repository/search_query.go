package repository

import (
	"fmt"
	"math"
	"strings"

	"github.com/octobees/stays/api/internal/dto"
)

// DefaultSearchLimit applies when a caller asks for a non-positive limit.
const DefaultSearchLimit = 10

const searchSelect = `SELECT ` + propertyColumns + `, AVG(property_reviews.rating)::float8 AS average_rating
FROM properties
JOIN property_reviews ON properties.id = property_reviews.property_id`

// searchQuery accumulates WHERE predicates and their positional arguments.
// Placeholders are numbered from the shared argument list, so every bind
// (predicate, HAVING or LIMIT) takes the next index.
type searchQuery struct {
	args       []any
	predicates []string
}

func (q *searchQuery) bind(value any) string {
	q.args = append(q.args, value)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *searchQuery) where(format string, value any) {
	q.predicates = append(q.predicates, fmt.Sprintf(format, q.bind(value)))
}

func (q *searchQuery) whereClause() string {
	if len(q.predicates) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(q.predicates, " AND ")
}

// buildSearchQuery renders the property search statement and its arguments.
// Filters are applied in a fixed order: city, owner, min price, max price.
func buildSearchQuery(criteria dto.PropertySearch, limit int) (string, []any) {
	q := &searchQuery{}

	if criteria.City != "" {
		q.where("city LIKE %s", "%"+criteria.City+"%")
	}
	if criteria.OwnerID != nil {
		q.where("owner_id = %s", *criteria.OwnerID)
	}
	if criteria.MinPricePerNight != nil {
		q.where("cost_per_night >= %s", toMinorUnits(*criteria.MinPricePerNight))
	}
	if criteria.MaxPricePerNight != nil {
		q.where("cost_per_night <= %s", toMinorUnits(*criteria.MaxPricePerNight))
	}

	var sb strings.Builder
	sb.WriteString(searchSelect)
	if where := q.whereClause(); where != "" {
		sb.WriteString("\n")
		sb.WriteString(where)
	}
	sb.WriteString("\nGROUP BY properties.id")
	if criteria.MinRating != nil {
		sb.WriteString("\nHAVING AVG(property_reviews.rating) >= ")
		sb.WriteString(q.bind(*criteria.MinRating))
	}
	sb.WriteString("\nORDER BY cost_per_night ASC, properties.id ASC\nLIMIT ")
	sb.WriteString(q.bind(limit))

	return sb.String(), q.args
}

// toMinorUnits converts a major-unit price into the cents stored in properties.
func toMinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}
