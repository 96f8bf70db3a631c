package listing

import (
	"context"
	"errors"
	"fmt"

	"estate-manager/feature/listing/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps listings in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoStore creates a store on db.collection.
func NewMongoStore(client *mongo.Client, db *mongo.Database, collection string) *MongoStore {
	return &MongoStore{client: client, col: db.Collection(collection)}
}

// WithTransaction implements Store. The session is driven by hand instead of
// through session.WithTransaction so fn, which uploads media, never runs twice.
func (s *MongoStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	if err := sess.StartTransaction(); err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	sc := mongo.NewSessionContext(ctx, sess)
	if err := fn(sc, &mongoTx{col: s.col}); err != nil {
		if abortErr := sess.AbortTransaction(context.WithoutCancel(ctx)); abortErr != nil {
			return errors.Join(err, fmt.Errorf("failed to abort transaction: %w", abortErr))
		}
		return err
	}

	if err := sess.CommitTransaction(sc); err != nil {
		_ = sess.AbortTransaction(context.WithoutCancel(ctx))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindByID implements Store.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	return (&mongoTx{col: s.col}).FindByID(ctx, id)
}

// Create implements Store.
func (s *MongoStore) Create(ctx context.Context, l *models.Listing) error {
	if _, err := s.col.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("failed to insert listing %s: %w", l.ID, err)
	}
	return nil
}

// MediaIndex implements Store.
func (s *MongoStore) MediaIndex(ctx context.Context) (map[string]string, error) {
	cur, err := s.col.Find(ctx, bson.M{"media.0": bson.M{"$exists": true}},
		options.Find().SetProjection(bson.M{"_id": 1, "media.publicId": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query media index: %w", err)
	}
	defer cur.Close(ctx)

	index := make(map[string]string)
	for cur.Next(ctx) {
		var doc struct {
			ID    string `bson:"_id"`
			Media []struct {
				PublicID string `bson:"publicId"`
			} `bson:"media"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode listing media: %w", err)
		}
		for _, m := range doc.Media {
			index[m.PublicID] = doc.ID
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}
	return index, nil
}

type mongoTx struct {
	col *mongo.Collection
}

func (t *mongoTx) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	var l models.Listing
	err := t.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}
	return &l, nil
}

func (t *mongoTx) Save(ctx context.Context, l *models.Listing) error {
	res, err := t.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return fmt.Errorf("failed to save listing %s: %w", l.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, l.ID)
	}
	return nil
}

func (t *mongoTx) Delete(ctx context.Context, id string) error {
	res, err := t.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
