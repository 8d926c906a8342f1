package resource

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// SortOrder is one requested ordering term.
type SortOrder struct {
	Attribute  string
	Descending bool
}

// Filter is one filter constraint. Multiple values match any of them (OR
// semantics); Null matches records whose attribute is actually null.
type Filter struct {
	Values []string
	Null   bool
}

// Options are the generic query options of a list or count request.
// Page/PageSize are pointers because pagination only applies when both
// arrive; a nil pair means the full result set.
type Options struct {
	Page     *int
	PageSize *int
	Sort     []SortOrder
	Filters  map[string]Filter
	Query    string
	Include  []string
}

// BuildQuery translates the generic query options into a gorm query against
// the resource described by meta.
//
// Unresolvable names - unknown sort attributes, unknown filter keys, unknown
// relation names - are dropped silently rather than reported. This is a
// deliberate permissive policy so that harmless unknown keys never fail a
// request; callers needing strictness must check against the metadata first.
func BuildQuery(tx *gorm.DB, meta *Metadata, o Options) *gorm.DB {
	q := tx

	if o.Page != nil && o.PageSize != nil {
		q = q.Offset(*o.Page * *o.PageSize).Limit(*o.PageSize)
	}

	for _, s := range o.Sort {
		column, ok := meta.Column(s.Attribute)
		if !ok {
			continue
		}
		direction := "ASC"
		if s.Descending {
			direction = "DESC"
		}
		q = q.Order(fmt.Sprintf("%s.%s %s", meta.Table, column, direction))
	}

	for _, key := range sortedKeys(o.Filters) {
		filter := o.Filters[key]
		if relation, attribute, ok := strings.Cut(key, "."); ok {
			q = applyRelationFilter(q, meta, relation, attribute, filter)
		} else {
			q = applyAttributeFilter(q, meta, key, filter)
		}
	}

	if tokens := strings.Fields(o.Query); len(tokens) > 0 {
		q = applyFreeTextQuery(q, tx, meta, tokens)
	}

	for _, name := range o.Include {
		association, ok := meta.Association(name)
		if !ok {
			continue
		}
		q = q.Preload(association.FieldName)
	}

	return q
}

// applyAttributeFilter constrains one of the resource's own attributes.
func applyAttributeFilter(q *gorm.DB, meta *Metadata, key string, filter Filter) *gorm.DB {
	column, ok := meta.Column(key)
	if !ok {
		return q
	}
	qualified := meta.Table + "." + column
	switch {
	case filter.Null:
		return q.Where(qualified + " IS NULL")
	case len(filter.Values) == 1:
		return q.Where(qualified+" = ?", filter.Values[0])
	case len(filter.Values) > 1:
		return q.Where(qualified+" IN ?", filter.Values)
	}
	return q
}

// applyRelationFilter constrains an attribute of a related resource,
// addressed by the relation's table name. The constraint is an aliased
// EXISTS sub-query, so the same relation can be embedded at the same time
// without join collision, and matching multiple related rows never
// duplicates the parent row.
func applyRelationFilter(q *gorm.DB, meta *Metadata, relation, attribute string, filter Filter) *gorm.DB {
	association, ok := meta.AssociationByTable(relation)
	if !ok {
		return q
	}
	column, ok := association.Target.Column(attribute)
	if !ok {
		return q
	}
	alias := relation + "_filter"
	exists := fmt.Sprintf("EXISTS (SELECT 1 FROM %s %s WHERE %s.%s = %s.%s AND %s.%s",
		association.Target.Table, alias, alias, association.ForeignKey,
		meta.Table, meta.IDColumn, alias, column)
	switch {
	case filter.Null:
		return q.Where(exists + " IS NULL)")
	case len(filter.Values) == 1:
		return q.Where(exists+" = ?)", filter.Values[0])
	case len(filter.Values) > 1:
		return q.Where(exists+" IN ?)", filter.Values)
	}
	return q
}

// applyFreeTextQuery adds the free-text clauses: one case-insensitive
// substring match per (queryable attribute x token) pair, all OR'd into a
// single group that is AND'd with the other constraints.
func applyFreeTextQuery(q *gorm.DB, tx *gorm.DB, meta *Metadata, tokens []string) *gorm.DB {
	group := tx.Session(&gorm.Session{NewDB: true})
	var clauses int
	for _, attribute := range meta.QueryAttributes {
		column, ok := meta.Column(attribute)
		if !ok {
			continue
		}
		for _, token := range tokens {
			group = group.Or(meta.Table+"."+column+" ILIKE ?", "%"+token+"%")
			clauses++
		}
	}
	if clauses == 0 {
		return q
	}
	return q.Where(group)
}

// sortedKeys makes the emitted SQL deterministic across runs.
func sortedKeys(filters map[string]Filter) []string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
