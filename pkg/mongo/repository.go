package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/platdesign/i18ngoose/pkg/document"
	"github.com/platdesign/i18ngoose/pkg/logger"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// Repository stores documents of one schema in a collection. Documents are
// stored in their multi-language form with the document id as "_id".
type Repository struct {
	coll   *mongo.Collection
	schema *schema.Schema
	logger *slog.Logger
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithRepositoryLogger sets the logger for write and lookup failures.
func WithRepositoryLogger(l *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRepository binds a collection of db to s.
func NewRepository(db *mongo.Database, collection string, s *schema.Schema, opts ...RepositoryOption) *Repository {
	r := &Repository{
		coll:   db.Collection(collection),
		schema: s,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("mongo"), logger.Collection(collection))
	return r
}

// Collection returns the name of the backing collection.
func (r *Repository) Collection() string {
	return r.coll.Name()
}

// Schema returns the schema documents are loaded with.
func (r *Repository) Schema() *schema.Schema {
	return r.schema
}

// Insert validates doc and stores it as a new record.
func (r *Repository) Insert(ctx context.Context, doc *document.Document) error {
	rec, err := r.record(doc)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Join(ErrDuplicateID, err)
		}
		r.logger.ErrorContext(ctx, "insert failed", logger.DocumentID(doc.ID()), logger.Error(err))
		return fmt.Errorf("mongo: insert %s: %w", doc.ID(), err)
	}
	return nil
}

// Replace validates doc and overwrites the stored record, inserting it when
// it does not exist yet.
func (r *Repository) Replace(ctx context.Context, doc *document.Document) error {
	rec, err := r.record(doc)
	if err != nil {
		return err
	}
	_, err = r.coll.ReplaceOne(ctx, bson.M{document.IDKey: doc.ID()}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		r.logger.ErrorContext(ctx, "replace failed", logger.DocumentID(doc.ID()), logger.Error(err))
		return fmt.Errorf("mongo: replace %s: %w", doc.ID(), err)
	}
	return nil
}

// FindByID loads the document stored under id.
func (r *Repository) FindByID(ctx context.Context, id string) (*document.Document, error) {
	var raw bson.M
	err := r.coll.FindOne(ctx, bson.M{document.IDKey: id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Join(ErrNotFound, err)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "find failed", logger.DocumentID(id), logger.Error(err))
		return nil, fmt.Errorf("mongo: find %s: %w", id, err)
	}
	return FromRecord(r.schema, raw), nil
}

// Delete removes the document stored under id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{document.IDKey: id})
	if err != nil {
		r.logger.ErrorContext(ctx, "delete failed", logger.DocumentID(id), logger.Error(err))
		return fmt.Errorf("mongo: delete %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) record(doc *document.Document) (bson.M, error) {
	if doc == nil {
		return nil, document.ErrNilDocument
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return ToRecord(doc)
}

// ToRecord converts doc into the stored BSON shape. Populated documents are
// stored as their ids.
func ToRecord(doc *document.Document) (bson.M, error) {
	if doc.ID() == "" {
		return nil, ErrMissingID
	}
	rec := bson.M(doc.ToObject(document.WithoutPopulated()))
	rec[document.IDKey] = doc.ID()
	return rec, nil
}

// FromRecord rebuilds a document from a decoded record. Driver specific
// values are normalized to the plain types documents use.
func FromRecord(s *schema.Schema, raw bson.M) *document.Document {
	data, _ := normalize(map[string]any(raw)).(map[string]any)
	id, _ := data[document.IDKey].(string)
	delete(data, document.IDKey)
	return document.FromObject(s, id, data)
}

func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		return normalize(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = normalize(x)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		return normalize([]any(t))
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = normalize(x)
		}
		return out
	case bson.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	}
	return v
}
