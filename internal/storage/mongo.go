package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoOpTimeout = 5 * time.Second

// sliceDoc is how a slice is stored in the "slices" collection: the slice
// key as _id and the raw JSON serialization as a string field.
type sliceDoc struct {
	ID   string `bson:"_id"`
	Data string `bson:"data"`
}

// Mongo is a Backend storing each slice as one document.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to MongoDB and verifies the connection with a ping.
func OpenMongo(mongoURI string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database("peerlearn")
	return &Mongo{client: client, coll: db.Collection("slices")}, nil
}

func (m *Mongo) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	var doc sliceDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Data, true, nil
}

func (m *Mongo) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	_, err := m.coll.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"data": value}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *Mongo) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
