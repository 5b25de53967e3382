package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/snakeplanner/snake-planner/pkg/grid"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"k8s.io/klog/v2"
)

// MongoURIForTesting enables test cases.
const MongoURIForTesting string = "mongodb://foo:123"

const (
	databaseName     = "snake"
	searchCollection = "searches"
)

// SearchRecord describes a single search as stored by a Tracer.
type SearchRecord struct {
	ID         string    `bson:"_id" json:"id"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	Width      int       `bson:"width" json:"width"`
	Height     int       `bson:"height" json:"height"`
	Head       grid.Cell `bson:"head" json:"head"`
	Goal       grid.Cell `bson:"goal" json:"goal"`
	Length     int       `bson:"length" json:"length"`
	Outcome    string    `bson:"outcome" json:"outcome"`
	PathLength int       `bson:"path_length" json:"path_length"`
	Explored   int       `bson:"explored" json:"explored"`
	ElapsedMs  float64   `bson:"elapsed_ms" json:"elapsed_ms"`
}

// Tracer allows us to trace searches & hence keep a record of what the planner did.
type Tracer interface {
	// TraceSearch adds a search to e.g. a database.
	TraceSearch(record SearchRecord)
	// GetSearches returns the most recent searches, newest first.
	GetSearches(limit int) ([]SearchRecord, error)
}

// MongoTracer wraps around a MongoDB client.
type MongoTracer struct {
	client *mongo.Client
}

// NewMongoTracer initializes a new tracer.
func NewMongoTracer(mongoURI string) *MongoTracer {
	mongoOptions := options.Client().ApplyURI(mongoURI)
	client, err := mongo.Connect(context.TODO(), mongoOptions)
	if err != nil {
		klog.Errorf("Could not connect to Mongo DB: %s", err)
		return &MongoTracer{nil}
	}
	if mongoURI != MongoURIForTesting {
		if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
			klog.Errorf("Could not ping Mongo DB: %s", err)
			return &MongoTracer{nil}
		}
	}
	return &MongoTracer{client}
}

func (t MongoTracer) TraceSearch(record SearchRecord) {
	doc := bson.D{
		{Key: "_id", Value: record.ID},
		{Key: "timestamp", Value: record.Timestamp},
		{Key: "width", Value: record.Width},
		{Key: "height", Value: record.Height},
		{Key: "head", Value: bson.D{{Key: "row", Value: record.Head.Row}, {Key: "col", Value: record.Head.Col}}},
		{Key: "goal", Value: bson.D{{Key: "row", Value: record.Goal.Row}, {Key: "col", Value: record.Goal.Col}}},
		{Key: "length", Value: record.Length},
		{Key: "outcome", Value: record.Outcome},
		{Key: "path_length", Value: record.PathLength},
		{Key: "explored", Value: record.Explored},
		{Key: "elapsed_ms", Value: record.ElapsedMs},
	}
	if t.client == nil {
		klog.Errorf("client not connected or not right client")
		return
	}
	collection := t.client.Database(databaseName).Collection(searchCollection)
	_, err := collection.InsertOne(context.TODO(), doc)
	if err != nil {
		klog.Errorf("Could not insert information into the database: %s.", err)
	}
}

func (t MongoTracer) GetSearches(limit int) ([]SearchRecord, error) {
	if t.client == nil {
		return nil, fmt.Errorf("client not connected or incorrect client")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit should be positive: %d", limit)
	}
	collection := t.client.Database(databaseName).Collection(searchCollection)

	opts := options.Find()
	opts.SetSort(bson.D{{Key: "timestamp", Value: -1}}) // newest first.
	opts.SetLimit(int64(limit))
	cursor, err := collection.Find(context.TODO(), bson.D{}, opts)
	if err != nil {
		klog.Errorf("Error to query searches: %s", err)
		return nil, err
	}
	records := make([]SearchRecord, 0, limit)
	if err := cursor.All(context.TODO(), &records); err != nil {
		klog.Errorf("Error to decode: %s", err)
		return nil, err
	}
	return records, nil
}
