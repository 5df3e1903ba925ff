package domain

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one product line in the shared cart. Quantity is at least 1 for
// as long as the item exists; TotalPrice is Quantity * Price.
type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Quantity   int64              `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Extra      bson.M             `bson:",inline" json:"-"`
}

func (c CartItem) MarshalJSON() ([]byte, error) {
	type plain CartItem
	return marshalFlat(plain(c), c.Extra)
}

func (c *CartItem) UnmarshalJSON(data []byte) error {
	type plain CartItem
	var p plain
	extra, err := unmarshalFlat(data, &p, "_id", "quantity", "price", "totalPrice")
	if err != nil {
		return err
	}
	*c = CartItem(p)
	c.Extra = extra
	return nil
}

// AdjustResult is the outcome of a quantity adjustment. When Removed is set
// the line item no longer exists and Quantity/TotalPrice are zero.
type AdjustResult struct {
	Removed    bool
	Quantity   int64
	TotalPrice float64
}
