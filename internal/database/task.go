package repository

import (
	"TaskBadger/entity"
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveTask upserts a task by its id.
func (m *MongoDB) SaveTask(ctx context.Context, task *entity.Task) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(tasksCollection)

	task.UpdatedAt = time.Now()

	filter := bson.D{{Key: "id", Value: task.ID}}
	update := bson.D{{Key: "$set", Value: task}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetTask retrieves a task by its id, nil when absent.
func (m *MongoDB) GetTask(ctx context.Context, id string) (*entity.Task, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(tasksCollection)

	filter := bson.D{{Key: "id", Value: id}}

	var task entity.Task
	err = collection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		return nil, m.findError(err)
	}

	return &task, nil
}

// GetTaskByName retrieves a user's task by name, case-insensitive. Returns
// nil when no task matches.
func (m *MongoDB) GetTaskByName(ctx context.Context, conversationID, userID, name string) (*entity.Task, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(tasksCollection)

	filter := bson.D{
		{Key: "conversation_id", Value: conversationID},
		{Key: "user_id", Value: userID},
		{Key: "name", Value: primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}},
	}

	var task entity.Task
	err = collection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		return nil, m.findError(err)
	}

	return &task, nil
}

// ListTasks returns every task belonging to a user within a conversation.
func (m *MongoDB) ListTasks(ctx context.Context, conversationID, userID string) ([]entity.Task, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(tasksCollection)

	filter := bson.D{{Key: "conversation_id", Value: conversationID}, {Key: "user_id", Value: userID}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, m.findError(err)
	}
	defer cursor.Close(ctx)

	var tasks []entity.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

// DeleteTask removes a task by its id.
func (m *MongoDB) DeleteTask(ctx context.Context, id string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(tasksCollection)

	filter := bson.D{{Key: "id", Value: id}}

	_, err = collection.DeleteOne(ctx, filter)
	return err
}
