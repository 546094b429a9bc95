package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MONGO_ERR_NAMESPACE_NOT_FOUND is returned when listing indexes of a collection that
// does not exist yet.
const MONGO_ERR_NAMESPACE_NOT_FOUND = 26

func ListCollectionIndexes(ctx context.Context, collection *mongo.Collection) ([]bson.M, error) {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == MONGO_ERR_NAMESPACE_NOT_FOUND {
			return []bson.M{}, nil
		}
		return nil, err
	}
	defer cursor.Close(ctx)

	indexes := []bson.M{}
	if err = cursor.All(ctx, &indexes); err != nil {
		return nil, err
	}
	return indexes, nil
}

// HasIndex reports whether an index with the given name is in the list.
func HasIndex(indexes []bson.M, name string) bool {
	for _, idx := range indexes {
		if n, ok := idx["name"].(string); ok && n == name {
			return true
		}
	}
	return false
}
