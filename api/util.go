package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/intectum/propellerhead/core/openapi"
	"github.com/intectum/propellerhead/core/resource"
)

// listOptions assembles the generic query options of a list request from its
// query parameters. A negative page or a non-positive pageSize is rejected
// here, before any query runs.
func listOptions(r *http.Request, meta *resource.Metadata) (resource.Options, error) {
	ctx := r.Context()
	options := resource.Options{
		Page:     openapi.IntParam(ctx, "page"),
		PageSize: openapi.IntParam(ctx, "pageSize"),
		Sort:     parseSort(r.URL.Query().Get("sort")),
		Filters:  parseFilters(r.URL.Query(), meta),
		Query:    r.URL.Query().Get("q"),
		Include:  parseInclude(r.URL.Query().Get("embed")),
	}
	var messages []string
	if options.Page != nil && *options.Page < 0 {
		messages = append(messages, "page must be greater than or equal to 0")
	}
	if options.PageSize != nil && *options.PageSize < 1 {
		messages = append(messages, "pageSize must be greater than 0")
	}
	if len(messages) > 0 {
		return options, &resource.ValidationError{Messages: messages}
	}
	return options, nil
}

// parseSort parses the comma-separated sort terms. A "-" prefix sorts the
// attribute descending.
func parseSort(value string) []resource.SortOrder {
	if value == "" {
		return nil
	}
	var orders []resource.SortOrder
	for _, term := range strings.Split(value, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if attribute, ok := strings.CutPrefix(term, "-"); ok {
			orders = append(orders, resource.SortOrder{Attribute: attribute, Descending: true})
			continue
		}
		orders = append(orders, resource.SortOrder{Attribute: term})
	}
	return orders
}

// parseFilters collects the declared filter attributes present in the query.
// A parameter repeated or holding comma-separated values matches any of them,
// and the literal value "null" matches records whose attribute is null.
func parseFilters(query url.Values, meta *resource.Metadata) map[string]resource.Filter {
	filters := map[string]resource.Filter{}
	for _, key := range meta.FilterAttributes {
		raw, ok := query[key]
		if !ok {
			continue
		}
		var values []string
		for _, entry := range raw {
			values = append(values, strings.Split(entry, ",")...)
		}
		if len(values) == 1 && values[0] == "null" {
			filters[key] = resource.Filter{Null: true}
			continue
		}
		filters[key] = resource.Filter{Values: values}
	}
	return filters
}

// writableColumns resolves the writable attributes present in the body to
// their storage columns, in field declaration order.
func writableColumns(meta *resource.Metadata, body map[string]interface{}) []string {
	var columns []string
	for i := range meta.Fields {
		field := &meta.Fields[i]
		if field.ReadOnly {
			continue
		}
		if _, present := body[field.Name]; present {
			columns = append(columns, field.Column)
		}
	}
	return columns
}

// parseInclude parses the comma-separated embed parameter.
func parseInclude(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

// addPagingHeaders exposes the unbounded match count and, for paginated
// requests, the RFC 8288 navigation links. The first link is always present;
// prev and next only within bounds, and last only when anything matched at
// all.
func addPagingHeaders(w http.ResponseWriter, r *http.Request, count int64, options resource.Options) {
	w.Header().Set("X-Total-Count", strconv.FormatInt(count, 10))

	if options.Page == nil || options.PageSize == nil {
		return
	}
	page, pageSize := *options.Page, *options.PageSize
	lastPage := (count - 1) / int64(pageSize)

	links := []string{pageLink(r, 0, "first")}
	if page > 0 {
		links = append(links, pageLink(r, page-1, "prev"))
	}
	if int64(page) < lastPage {
		links = append(links, pageLink(r, page+1, "next"))
	}
	if count > 0 {
		links = append(links, pageLink(r, int(lastPage), "last"))
	}
	w.Header().Set("Link", strings.Join(links, ", "))
}

func pageLink(r *http.Request, page int, rel string) string {
	u := *r.URL
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()
	return fmt.Sprintf("<%s>; rel=\"%s\"", u.RequestURI(), rel)
}
