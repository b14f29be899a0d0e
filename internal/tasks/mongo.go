package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/config"
)

var _ Store = (*MongoStore)(nil)

// MongoStore keeps one document per entry. Order comes from seq, which is
// drawn from a counter document so that it increases across processes.
type MongoStore struct {
	client    *mongo.Client
	entries   *mongo.Collection
	counters  *mongo.Collection
	counterID string
}

type entry struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
	Seq  int64  `bson:"seq"`
}

type counter struct {
	Seq int64 `bson:"seq"`
}

// NewMongoStore connects, pings the primary and ensures the name/seq index.
func NewMongoStore(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	m := &MongoStore{
		client:    client,
		entries:   db.Collection(cfg.Collection),
		counters:  db.Collection(cfg.Collection + "_counters"),
		counterID: cfg.Collection,
	}

	_, err = m.entries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}, {Key: "seq", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("creating task index: %w", err)
	}
	return m, nil
}

func (m *MongoStore) Add(ctx context.Context, name string) ([]string, error) {
	seq, err := m.nextSeq(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := m.entries.InsertOne(ctx, entry{ID: uuid.NewString(), Name: name, Seq: seq}); err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}
	return m.List(ctx)
}

func (m *MongoStore) Remove(ctx context.Context, name string) ([]string, bool, error) {
	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "seq", Value: 1}})
	err := m.entries.FindOneAndDelete(ctx, bson.M{"name": name}, opts).Err()
	removed := true
	if errors.Is(err, mongo.ErrNoDocuments) {
		removed = false
	} else if err != nil {
		return nil, false, fmt.Errorf("removing task: %w", err)
	}

	names, err := m.List(ctx)
	if err != nil {
		return nil, false, err
	}
	return names, removed, nil
}

func (m *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cur, err := m.entries.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	var docs []entry
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoStore) nextSeq(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var c counter
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": m.counterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("allocating task sequence: %w", err)
	}
	return c.Seq, nil
}
