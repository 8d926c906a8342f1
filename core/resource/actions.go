package resource

import (
	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/intectum/propellerhead/core"
)

const (
	createdColumn = "created_at"
	updatedColumn = "updated_at"
)

// Entity is the contract every resource model fulfills so the generic
// action set can assign ids and timestamps.
type Entity interface {
	GetID() string
	SetID(id string)
	SetCreated(at core.Timestamp)
	SetUpdated(at core.Timestamp)
}

// Actions is the generic action set for one resource type, built once from
// its metadata. All operations run on the request-scoped transaction in the
// passed Context.
type Actions[T any, PT interface {
	*T
	Entity
}] struct {
	meta *Metadata
}

// Resolve builds the action set for the resource described by meta.
func Resolve[T any, PT interface {
	*T
	Entity
}](meta *Metadata) *Actions[T, PT] {
	return &Actions[T, PT]{meta: meta}
}

// Metadata returns the resource metadata the action set was built from.
func (a *Actions[T, PT]) Metadata() *Metadata {
	return a.meta
}

// Get retrieves the model for the given ID, with the requested associations
// eager-loaded. Returns ErrNotFound when no record has that ID.
func (a *Actions[T, PT]) Get(c *Context, id string, include []string) (PT, error) {
	model := PT(new(T))
	q := BuildQuery(c.Tx, a.meta, Options{Include: include})
	err := q.Where(a.idColumn()+" = ?", id).First(model).Error
	return ToModel[T, PT](model, TranslateError(a.meta, err))
}

// GetAll retrieves the filtered, sorted, paginated models. An empty result
// is not an error.
func (a *Actions[T, PT]) GetAll(c *Context, o Options) ([]T, error) {
	var models []T
	err := BuildQuery(c.Tx, a.meta, o).Find(&models).Error
	if err != nil {
		return nil, TranslateError(a.meta, err)
	}
	return models, nil
}

// Count returns the number of models matching the filters and free-text
// query, always against the unbounded set: pagination, sort and includes do
// not apply.
func (a *Actions[T, PT]) Count(c *Context, filters map[string]Filter, query string) (int64, error) {
	var count int64
	q := BuildQuery(c.Tx.Model(new(T)), a.meta, Options{Filters: filters, Query: query})
	if err := q.Count(&count).Error; err != nil {
		return 0, TranslateError(a.meta, err)
	}
	return count, nil
}

// Create persists a new model. The id and timestamps are engine-assigned;
// whatever the client supplied for them is overwritten. The created model is
// re-fetched within the same transaction so the response carries the stored
// state, with the requested associations embedded.
func (a *Actions[T, PT]) Create(c *Context, model PT, include []string) (PT, error) {
	now := core.Now()
	model.SetID(uuid.NewString())
	model.SetCreated(now)
	model.SetUpdated(now)
	if err := c.Tx.Omit(clause.Associations).Create(model).Error; err != nil {
		return nil, TranslateError(a.meta, err)
	}
	return a.Get(c, model.GetID(), include)
}

// Update persists changes to the record identified by the model's id. The id
// itself is never mutated. When columns names the attributes the client
// actually sent, only those are written, so omitted defaulted fields keep
// their stored value; a nil columns writes every writable column. Updating a
// nonexistent id returns ErrNotFound; the existence check is explicit because
// a bare save would silently do nothing.
func (a *Actions[T, PT]) Update(c *Context, model PT, columns []string, include []string) (PT, error) {
	var count int64
	err := c.Tx.Model(new(T)).Where(a.idColumn()+" = ?", model.GetID()).Count(&count).Error
	if err != nil {
		return nil, TranslateError(a.meta, err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	model.SetUpdated(core.Now())
	q := c.Tx.Model(model).Omit(clause.Associations)
	if len(columns) > 0 {
		q = q.Select(append(columns, updatedColumn))
	} else {
		q = q.Select("*").Omit(a.meta.IDColumn, createdColumn, clause.Associations)
	}
	if err := q.Updates(model).Error; err != nil {
		return nil, TranslateError(a.meta, err)
	}
	return a.Get(c, model.GetID(), include)
}

// Destroy deletes the record with the given ID. Deleting a nonexistent id is
// a no-op, not an error.
func (a *Actions[T, PT]) Destroy(c *Context, id string) error {
	err := c.Tx.Where(a.idColumn()+" = ?", id).Delete(new(T)).Error
	return TranslateError(a.meta, err)
}

func (a *Actions[T, PT]) idColumn() string {
	return a.meta.Table + "." + a.meta.IDColumn
}
