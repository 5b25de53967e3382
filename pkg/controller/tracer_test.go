package controller

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snakeplanner/snake-planner/pkg/grid"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestGetSearchesForSanity tests for failure.
func TestGetSearchesForSanity(t1 *testing.T) {
	tests := []struct {
		name    string
		client  *mongo.Client
		limit   int
		wantErr bool
	}{
		{name: "tc1", client: &mongo.Client{}, limit: 0, wantErr: true},
		{name: "tc2", client: nil, limit: 10, wantErr: true},
		{name: "tc3", client: nil, limit: -1, wantErr: true},
	}
	for _, tt := range tests {
		t1.Run(tt.name, func(t1 *testing.T) {
			t := MongoTracer{
				client: tt.client,
			}
			got, err := t.GetSearches(tt.limit)
			if (err != nil) != tt.wantErr {
				t1.Errorf("GetSearches() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != nil {
				t1.Errorf("GetSearches() got = %v, want nil", got)
			}
		})
	}
}

// TestTraceSearchForSanity tests for failure.
func TestTraceSearchForSanity(t1 *testing.T) {
	tests := []struct {
		name   string
		client *mongo.Client
		record SearchRecord
	}{
		{name: "tc1", client: nil, record: SearchRecord{ID: "foo"}},
		{name: "tc2", client: nil, record: SearchRecord{}},
	}
	for _, tt := range tests {
		t1.Run(tt.name, func(t1 *testing.T) {
			t := MongoTracer{
				client: tt.client,
			}
			t.TraceSearch(tt.record)
		})
	}
}

// TestMockedTracerForSanity tests for sanity.
func TestMockedTracerForSanity(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	mt.Run("trace", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		tracer := MongoTracer{client: mt.Client}
		tracer.TraceSearch(SearchRecord{ID: "abc", Timestamp: now, Width: 3, Height: 3, Outcome: "succeeded"})
		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
		assert.Equal(mt, databaseName, started.DatabaseName)
	})

	mt.Run("query", func(mt *mtest.T) {
		first := bson.D{
			{Key: "_id", Value: "abc"},
			{Key: "timestamp", Value: now},
			{Key: "width", Value: 10},
			{Key: "height", Value: 8},
			{Key: "head", Value: bson.D{{Key: "row", Value: 1}, {Key: "col", Value: 2}}},
			{Key: "goal", Value: bson.D{{Key: "row", Value: 5}, {Key: "col", Value: 6}}},
			{Key: "length", Value: 3},
			{Key: "outcome", Value: "succeeded"},
			{Key: "path_length", Value: 8},
			{Key: "explored", Value: 21},
			{Key: "elapsed_ms", Value: 0.5},
		}
		second := bson.D{{Key: "_id", Value: "def"}, {Key: "outcome", Value: "exhausted"}}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, databaseName+"."+searchCollection, mtest.FirstBatch, first, second))

		tracer := MongoTracer{client: mt.Client}
		records, err := tracer.GetSearches(2)
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, SearchRecord{
			ID:         "abc",
			Timestamp:  now,
			Width:      10,
			Height:     8,
			Head:       grid.Cell{Row: 1, Col: 2},
			Goal:       grid.Cell{Row: 5, Col: 6},
			Length:     3,
			Outcome:    "succeeded",
			PathLength: 8,
			Explored:   21,
			ElapsedMs:  0.5,
		}, records[0])
		assert.Equal(mt, "exhausted", records[1].Outcome)
	})

	mt.Run("query error", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 0}, {Key: "errmsg", Value: "boom"}})
		tracer := MongoTracer{client: mt.Client}
		_, err := tracer.GetSearches(1)
		assert.Error(mt, err)
	})
}

// TestNewMongoTracerForSanity tests for failure.
func TestNewMongoTracerForSanity(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()
	mt.Client, _ = mongo.Connect(context.TODO(), options.Client().ApplyURI(MongoURIForTesting))
	tests := []struct {
		name     string
		mongoURI string
		want     *MongoTracer
	}{
		{name: "tc1", mongoURI: "other:123", want: &MongoTracer{nil}},
		{name: "tc2", mongoURI: "mongodb://bar:321", want: &MongoTracer{nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewMongoTracer(tt.mongoURI); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewMongoTracer() = %v, want %v", got, tt.want)
			}
		})
	}
}
