package repository

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Shahriar-Fardows/snowfye-server/internal/domain"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection(CartCollection),
	}
}

func (m *mongoCartRepository) List(ctx context.Context) ([]domain.CartItem, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "find cart items")
	}

	items := []domain.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, errors.Wrap(err, "decode cart items")
	}
	return items, nil
}

func (m *mongoCartRepository) Get(ctx context.Context, id string) (*domain.CartItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var item domain.CartItem
	err = m.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get cart item")
	}
	return &item, nil
}

func (m *mongoCartRepository) Insert(ctx context.Context, item domain.CartItem) (primitive.ObjectID, error) {
	item.ID = primitive.NewObjectID()
	if _, err := m.collection.InsertOne(ctx, item); err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert cart item")
	}
	return item.ID, nil
}

// SetQuantity writes quantity and totalPrice only if the stored quantity is
// still expected. It reports whether the write happened.
func (m *mongoCartRepository) SetQuantity(ctx context.Context, id string, expected, quantity int64, totalPrice float64) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}

	filter := bson.M{"_id": oid, "quantity": quantityIs(expected)}
	update := bson.M{
		"$set": bson.M{
			"quantity":   quantity,
			"totalPrice": totalPrice,
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, errors.Wrap(err, "update cart item quantity")
	}
	return result.MatchedCount == 1, nil
}

// DeleteIfQuantity removes the item only if the stored quantity is still
// expected.
func (m *mongoCartRepository) DeleteIfQuantity(ctx context.Context, id string, expected int64) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}

	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": oid, "quantity": quantityIs(expected)})
	if err != nil {
		return false, errors.Wrap(err, "remove cart item")
	}
	return result.DeletedCount == 1, nil
}

// quantityIs matches a stored quantity. Documents without a quantity decode
// as zero, so zero also matches a missing or null field.
func quantityIs(expected int64) interface{} {
	if expected == 0 {
		return bson.M{"$in": bson.A{0, nil}}
	}
	return expected
}

func (m *mongoCartRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, errors.Wrap(err, "delete cart item")
	}
	return result.DeletedCount, nil
}
