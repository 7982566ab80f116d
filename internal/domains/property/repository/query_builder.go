package repository

import (
	"fmt"
	"strconv"
	"strings"

	"realestate-backend/internal/domains/property/model"
)

// placeholder renders the n-th (1-based) bind parameter of a dialect.
type placeholder func(n int) string

func dollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }
func questionPlaceholder(int) string { return "?" }

// queryBuilder collects WHERE conditions and their arguments.
type queryBuilder struct {
	ph         placeholder
	conditions []string
	args       []any
}

func newQueryBuilder(ph placeholder) *queryBuilder {
	return &queryBuilder{ph: ph}
}

// addCondition appends a condition whose %s verbs are replaced by successive
// placeholders, one per value.
func (qb *queryBuilder) addCondition(format string, values ...any) {
	phs := make([]any, len(values))
	for i, v := range values {
		qb.args = append(qb.args, v)
		phs[i] = qb.ph(len(qb.args))
	}
	qb.conditions = append(qb.conditions, fmt.Sprintf(format, phs...))
}

// next returns the placeholder of the argument that would be appended next.
func (qb *queryBuilder) next(offset int) string {
	return qb.ph(len(qb.args) + offset)
}

func (qb *queryBuilder) where() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(qb.conditions, " AND ")
}

// buildListFilter renders the listing filter. Bedrooms and bathrooms minima
// let rows with no recorded value through.
func buildListFilter(f model.PropertyFilter, ph placeholder) *queryBuilder {
	qb := newQueryBuilder(ph)
	if f.City != nil {
		if city := strings.TrimSpace(*f.City); city != "" {
			qb.addCondition("p.city = %s", city)
		}
	}
	if f.MinPrice != nil {
		qb.addCondition("p.price >= %s", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		qb.addCondition("p.price <= %s", *f.MaxPrice)
	}
	if f.MinBedrooms != nil {
		qb.addCondition("(p.bedrooms IS NULL OR p.bedrooms >= %s)", *f.MinBedrooms)
	}
	if f.MinBathrooms != nil {
		qb.addCondition("(p.bathrooms IS NULL OR p.bathrooms >= %s)", *f.MinBathrooms)
	}
	return qb
}

const propertyColumns = `p.id, p.code, p.name, p.address, p.city, p.price,
	p.year_built, p.bedrooms, p.bathrooms, p.area_sq_ft, p.owner_id, p.created_at`

// listQueries returns the count query and the page query for f.
func listQueries(f model.PropertyFilter, ph placeholder) (countSQL, pageSQL string, args []any) {
	qb := buildListFilter(f, ph)
	where := qb.where()

	countSQL = "SELECT COUNT(*) FROM properties p" + where
	pageSQL = fmt.Sprintf("SELECT %s FROM properties p%s ORDER BY p.id DESC LIMIT %s OFFSET %s",
		propertyColumns, where, qb.next(1), qb.next(2))

	return countSQL, pageSQL, qb.args
}
