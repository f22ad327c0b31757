// internal/app/store/employees/store.go
package employees

import (
	"context"
	"fmt"

	"github.com/dalemusser/staffboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollection is the MongoDB collection read when none is configured.
const DefaultCollection = "employees"

// Store reads and seeds employee records in MongoDB. The dashboard only
// reads, once, at startup.
type Store struct {
	c *mongo.Collection
}

// New returns a Store over collection in db. An empty name selects
// DefaultCollection.
func New(db *mongo.Database, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{c: db.Collection(collection)}
}

// Collection returns the collection name.
func (s *Store) Collection() string { return s.c.Name() }

// All reads every record, ordered by id.
func (s *Store) All(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}}).SetProjection(bson.M{"_id": 0})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []models.Employee
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Load reads the collection into a Dataset. An empty collection returns
// ErrEmptyDataset together with an empty, usable dataset.
func (s *Store) Load(ctx context.Context) (*Dataset, error) {
	recs, err := s.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.c.Name(), err)
	}
	d := NewDataset(recs, SourceMongo)
	if d.Len() == 0 {
		return d, ErrEmptyDataset
	}
	return d, nil
}

// InsertMany writes records in one unordered batch and returns how many
// were inserted.
func (s *Store) InsertMany(ctx context.Context, recs []models.Employee) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	docs := make([]any, len(recs))
	for i, e := range recs {
		docs[i] = e
	}
	res, err := s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if res != nil {
		return len(res.InsertedIDs), err
	}
	return 0, err
}

// Replace drops every record and inserts recs.
func (s *Store) Replace(ctx context.Context, recs []models.Employee) (int, error) {
	if _, err := s.c.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("clear %s: %w", s.c.Name(), err)
	}
	return s.InsertMany(ctx, recs)
}

// EnsureIndexes creates the id index used for ordered reads.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetName("idx_employees_id"),
	})
	return err
}
