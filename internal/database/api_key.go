package repository

import (
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CheckApiKey validates an API key and returns the owner it was issued to.
func (m *MongoDB) CheckApiKey(key string) (string, error) {
	connection, err := m.connect()
	if err != nil {
		return "", err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(apiKeysCollection)
	filter := bson.D{{Key: "key", Value: key}}

	var result struct {
		Owner string `bson:"owner"`
		Key   string `bson:"key"`
	}
	err = collection.FindOne(m.ctx, filter).Decode(&result)
	if err != nil {
		return "", m.findError(err)
	}

	if result.Owner == "" {
		return "", fmt.Errorf("api key not found")
	}

	return result.Owner, nil
}

// EnsureApiKey returns the owner's API key, issuing a new one when the
// owner has none yet.
func (m *MongoDB) EnsureApiKey(owner string) (string, error) {
	connection, err := m.connect()
	if err != nil {
		return "", err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(apiKeysCollection)

	var existing struct {
		Key string `bson:"key"`
	}
	err = collection.FindOne(m.ctx, bson.D{{Key: "owner", Value: owner}}).Decode(&existing)
	if err != nil {
		if findErr := m.findError(err); findErr != nil {
			return "", fmt.Errorf("failed to get existing API key: %w", findErr)
		}
	}
	if existing.Key != "" {
		return existing.Key, nil
	}

	key := uuid.NewString()

	doc := bson.D{
		{Key: "owner", Value: owner},
		{Key: "key", Value: key},
	}

	_, err = collection.InsertOne(m.ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongodb insert error: %w", err)
	}

	return key, nil
}
