// Package mongolayout reads element rectangles from MongoDB.
//
// Each element is one document keyed by its handle:
//
//	{_id, x, y, width, height, origin_x, origin_y, measured_at}
//
// A layout service that measures real elements writes these documents with
// [Store.Put]; tether reads them through [Store.Layout].
package mongolayout

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/tether/pkg/cache"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/layout"
)

// Defaults for New.
const (
	DefaultDatabase   = "tether"
	DefaultCollection = "layouts"
	DefaultTimeout    = 5 * time.Second
)

type document struct {
	ID        string `bson:"_id"`
	geom.Rect `bson:",inline"`
}

// collection is the subset of *mongo.Collection the store uses.
type collection interface {
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// Store is a layout.Provider backed by a MongoDB collection.
type Store struct {
	client  *mongo.Client
	coll    collection
	timeout time.Duration
}

// Connect opens a client for uri and returns a store on db.coll. Empty names
// use the defaults.
func Connect(ctx context.Context, uri, db, coll string) (*Store, error) {
	if err := errors.ValidateURL(uri, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	if db == "" {
		db = DefaultDatabase
	}
	if coll == "" {
		coll = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongo")
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		pctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
		if err := client.Ping(pctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}

	return &Store{
		client:  client,
		coll:    client.Database(db).Collection(coll),
		timeout: DefaultTimeout,
	}, nil
}

// Layout implements layout.Provider. Missing documents are not ready.
func (s *Store) Layout(ctx context.Context, handle string) (geom.Rect, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": handle}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return geom.Rect{}, errors.NotReady("element %q has no stored layout", handle)
	}
	if err != nil {
		return geom.Rect{}, errors.Wrap(errors.ErrCodeNetwork, err, "load layout %q", handle)
	}
	return doc.Rect, nil
}

// Put upserts the rectangle for handle. A zero MeasuredAt is set to now.
func (s *Store) Put(ctx context.Context, handle string, r geom.Rect) error {
	if err := errors.ValidateID(handle); err != nil {
		return err
	}
	if r.MeasuredAt.IsZero() {
		r.MeasuredAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": handle},
		bson.M{"$set": r},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store layout %q: %w", handle, err)
	}
	return nil
}

// Delete removes the document for handle.
func (s *Store) Delete(ctx context.Context, handle string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": handle}); err != nil {
		return fmt.Errorf("delete layout %q: %w", handle, err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

var _ layout.Provider = (*Store)(nil)
