package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intectum/propellerhead/core/resource"
)

// The metadata is the single source of truth for querying, validation and
// documentation, so every name it declares has to resolve.
func TestMetadataConsistency(t *testing.T) {
	for _, meta := range []*resource.Metadata{CustomerMeta, NoteMeta} {
		for _, attribute := range meta.QueryAttributes {
			_, ok := meta.Column(attribute)
			assert.True(t, ok, "%s query attribute %s does not resolve", meta.Name, attribute)
		}
		for _, attribute := range meta.FilterAttributes {
			if relation, dotted, ok := strings.Cut(attribute, "."); ok {
				association, found := meta.AssociationByTable(relation)
				assert.True(t, found, "%s filter relation %s does not resolve", meta.Name, relation)
				_, found = association.Target.Column(dotted)
				assert.True(t, found, "%s filter attribute %s does not resolve", meta.Name, attribute)
				continue
			}
			_, ok := meta.Column(attribute)
			assert.True(t, ok, "%s filter attribute %s does not resolve", meta.Name, attribute)
		}
		for i := range meta.Associations {
			assert.NotNil(t, meta.Associations[i].Target, "%s association %s has no target", meta.Name, meta.Associations[i].Name)
		}
	}
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, CustomerMeta.Table, Customer{}.TableName())
	assert.Equal(t, NoteMeta.Table, Note{}.TableName())
}

func TestCustomerStatuses(t *testing.T) {
	status, ok := CustomerMeta.Field("status")
	assert.True(t, ok)
	assert.Equal(t, Statuses, status.Enum)
	assert.Equal(t, "prospective", status.Default)
}
