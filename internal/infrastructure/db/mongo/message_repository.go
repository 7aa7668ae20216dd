package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

const collectionMessages = "messages"

// MessageRepository implements ports.MessageRepository using MongoDB.
type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type mongoMessage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Content    string             `bson:"content"`
	SenderID   primitive.ObjectID `bson:"sender_id"`
	ReceiverID primitive.ObjectID `bson:"receiver_id"`
	Read       bool               `bson:"read"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (mm *mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:         mm.ID.Hex(),
		Content:    mm.Content,
		SenderID:   mm.SenderID.Hex(),
		ReceiverID: mm.ReceiverID.Hex(),
		Read:       mm.Read,
		CreatedAt:  mm.CreatedAt.UTC(),
		UpdatedAt:  mm.UpdatedAt.UTC(),
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	sender, err := objectID(msg.SenderID)
	if err != nil {
		return nil, fmt.Errorf("create message: sender: %w", err)
	}
	receiver, err := objectID(msg.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("create message: receiver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMessage{
		Content:    msg.Content,
		SenderID:   sender,
		ReceiverID: receiver,
		Read:       msg.Read,
		CreatedAt:  msg.CreatedAt,
		UpdatedAt:  msg.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMessage
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *MessageRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Message, error) {
	uid, err := objectID(userID)
	if err != nil {
		return []*domain.Message{}, nil
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": uid},
		bson.M{"receiver_id": uid},
	}}
	return r.find(ctx, filter, -1)
}

func (r *MessageRepository) ListBetween(ctx context.Context, a, b string) ([]*domain.Message, error) {
	aid, err := objectID(a)
	if err != nil {
		return []*domain.Message{}, nil
	}
	bid, err := objectID(b)
	if err != nil {
		return []*domain.Message{}, nil
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": aid, "receiver_id": bid},
		bson.M{"sender_id": bid, "receiver_id": aid},
	}}
	return r.find(ctx, filter, 1)
}

func (r *MessageRepository) MarkRead(ctx context.Context, id string) (*domain.Message, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMessage
	update := bson.M{"$set": bson.M{"read": true, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("mark read: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	uid, err := objectID(receiverID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"receiver_id": uid, "read": false})
}

// EnsureIndexes creates the participant and recency indexes.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "read", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MessageRepository) find(ctx context.Context, filter bson.M, order int) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: order}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoMessage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	msgs := make([]*domain.Message, 0, len(docs))
	for i := range docs {
		msgs = append(msgs, docs[i].toDomain())
	}
	return msgs, nil
}
