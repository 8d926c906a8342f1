package resource

import (
	"errors"

	"gorm.io/gorm"
)

// ToModel converts the result of a storage fetch into the API-facing model.
// A missing row becomes ErrNotFound, satisfying the get error contract.
//
// Date normalization happens structurally: every stored timestamp is a
// core.Timestamp, which marshals as a timezone-explicit UTC value, and
// embedded models carry the same type, so nesting is normalized recursively
// for free. Likewise there are no filter-only association aliases to strip:
// relational filters are expressed as EXISTS sub-queries that never enter
// the model.
func ToModel[T any, PT *T](model PT, err error) (PT, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if model == nil {
		return nil, ErrNotFound
	}
	return model, nil
}
