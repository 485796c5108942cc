package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/aggroplatform/aggro-admin/logger"
)

// ConnectMongo initializes the MongoDB connection
func ConnectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB")
	return client, nil
}

// MongoGateway is the Gateway implementation backed by a MongoDB database.
type MongoGateway struct {
	db *mongo.Database
}

func NewMongoGateway(client *mongo.Client, dbName string) *MongoGateway {
	return &MongoGateway{db: client.Database(dbName)}
}

func (g *MongoGateway) collection(name string) *mongo.Collection {
	return g.db.Collection(name)
}

// idFilter accepts both ObjectID hex ids and caller-chosen string ids.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

// toDocument merges the store id into the returned object under "id".
func toDocument(raw bson.M) Document {
	doc := Document{}
	for k, v := range raw {
		if k == "_id" {
			switch id := v.(type) {
			case primitive.ObjectID:
				doc["id"] = id.Hex()
			default:
				doc["id"] = fmt.Sprintf("%v", id)
			}
			continue
		}
		doc[k] = v
	}
	return doc
}

func stripID(doc Document) bson.M {
	out := bson.M{}
	for k, v := range doc {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

func (g *MongoGateway) Create(ctx context.Context, collection string, doc Document) (string, error) {
	res, err := g.collection(collection).InsertOne(ctx, stripID(doc))
	if err != nil {
		return "", &WriteError{Collection: collection, Op: "create", Err: err}
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (g *MongoGateway) Put(ctx context.Context, collection, id string, doc Document) error {
	body := stripID(doc)
	body["_id"] = id
	opts := options.Replace().SetUpsert(true)
	_, err := g.collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, body, opts)
	if err != nil {
		return &WriteError{Collection: collection, Op: "put", Err: err}
	}
	return nil
}

func (g *MongoGateway) All(ctx context.Context, collection string) ([]Document, error) {
	cursor, err := g.collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, &ReadError{Collection: collection, Err: err}
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, &ReadError{Collection: collection, Err: err}
		}
		docs = append(docs, toDocument(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, &ReadError{Collection: collection, Err: err}
	}
	return docs, nil
}

func (g *MongoGateway) ByID(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := g.collection(collection).FindOne(ctx, idFilter(id)).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &ReadError{Collection: collection, Err: err}
	}
	return toDocument(raw), nil
}

func (g *MongoGateway) Update(ctx context.Context, collection, id string, fields Document) error {
	res, err := g.collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": stripID(fields)})
	if err != nil {
		return &WriteError{Collection: collection, Op: "update", Err: err}
	}
	if res.MatchedCount == 0 {
		return &WriteError{Collection: collection, Op: "update", Err: ErrNotFound}
	}
	return nil
}

func (g *MongoGateway) Delete(ctx context.Context, collection, id string) error {
	_, err := g.collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return &WriteError{Collection: collection, Op: "delete", Err: err}
	}
	return nil
}

func (g *MongoGateway) Find(ctx context.Context, collection, field string, value interface{}) ([]Document, error) {
	cursor, err := g.collection(collection).Find(ctx, bson.M{field: value})
	if err != nil {
		return nil, &ReadError{Collection: collection, Err: err}
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, &ReadError{Collection: collection, Err: err}
		}
		docs = append(docs, toDocument(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, &ReadError{Collection: collection, Err: err}
	}
	return docs, nil
}

func (g *MongoGateway) Subscribe(collection string, fn func()) func() {
	// Watch first, then fire the initial notification, so a mutation
	// landing during the subscriber's first refetch still triggers another.
	cancel := g.SubscribeChanges(collection, func(Change) { fn() })
	fn()
	return cancel
}

func (g *MongoGateway) SubscribeChanges(collection string, fn func(Change)) func() {
	ctx, cancel := context.WithCancel(context.Background())

	// The stream must be live before this returns; opening it inside the
	// goroutine would drop mutations racing the subscription.
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := g.collection(collection).Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		logger.Error("failed to open change stream",
			zap.String("collection", collection), zap.Error(err))
		cancel()
		return func() {}
	}

	go func() {
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var event struct {
				OperationType string `bson:"operationType"`
				DocumentKey   struct {
					ID interface{} `bson:"_id"`
				} `bson:"documentKey"`
				FullDocument bson.M `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				logger.Error("failed to decode change event",
					zap.String("collection", collection), zap.Error(err))
				continue
			}

			change := Change{Op: event.OperationType}
			switch id := event.DocumentKey.ID.(type) {
			case primitive.ObjectID:
				change.ID = id.Hex()
			default:
				change.ID = fmt.Sprintf("%v", id)
			}
			if event.OperationType != "delete" && event.FullDocument != nil {
				change.Doc = toDocument(event.FullDocument)
			}
			if event.OperationType == "replace" {
				change.Op = "update"
			}
			fn(change)
		}
	}()

	return cancel
}
