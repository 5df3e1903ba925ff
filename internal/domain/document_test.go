package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartItem_JSONKeepsClientFields(t *testing.T) {
	var item CartItem
	err := json.Unmarshal([]byte(`{"quantity":3,"price":2.5,"name":"Mug","tags":["kitchen"]}`), &item)
	require.NoError(t, err)

	assert.Equal(t, int64(3), item.Quantity)
	assert.Equal(t, 2.5, item.Price)
	assert.True(t, item.ID.IsZero())
	assert.Equal(t, "Mug", item.Extra["name"])
	assert.Equal(t, []interface{}{"kitchen"}, item.Extra["tags"])
	assert.NotContains(t, item.Extra, "quantity")
}

func TestCartItem_MarshalFlattensExtra(t *testing.T) {
	id := primitive.NewObjectID()
	item := CartItem{
		ID:         id,
		Quantity:   2,
		Price:      4,
		TotalPrice: 8,
		// a stored field cannot shadow a typed one
		Extra: bson.M{"name": "Mug", "quantity": 99},
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, id.Hex(), out["_id"])
	assert.Equal(t, 2.0, out["quantity"])
	assert.Equal(t, 8.0, out["totalPrice"])
	assert.Equal(t, "Mug", out["name"])
	assert.NotContains(t, out, "Extra")
}

func TestCartItem_RejectsNonIntegerQuantity(t *testing.T) {
	var item CartItem
	assert.Error(t, json.Unmarshal([]byte(`{"quantity":"2"}`), &item))
	assert.Error(t, json.Unmarshal([]byte(`{"quantity":1.5}`), &item))
}

func TestCartItem_BSONInlineExtra(t *testing.T) {
	item := CartItem{Quantity: 1, Price: 3, TotalPrice: 3, Extra: bson.M{"color": "red"}}

	raw, err := bson.Marshal(item)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "red", doc["color"])
	assert.NotContains(t, doc, "_id")

	var back CartItem
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, "red", back.Extra["color"])
	assert.Equal(t, int64(1), back.Quantity)
}

func TestPromoCode_JSON(t *testing.T) {
	var code PromoCode
	require.NoError(t, json.Unmarshal([]byte(`{"code":"SAVE5","discountPercent":5,"minOrder":50}`), &code))
	assert.Equal(t, "SAVE5", code.Code)
	assert.Equal(t, 5.0, code.DiscountPercent)
	assert.Equal(t, 50.0, code.Extra["minOrder"])

	data, err := json.Marshal(code)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"minOrder":50`)
}

func TestProduct_MarshalWithoutExtra(t *testing.T) {
	id := primitive.NewObjectID()
	data, err := json.Marshal(Product{ID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"`+id.Hex()+`"}`, string(data))
}

func TestInsertResult_JSON(t *testing.T) {
	id := primitive.NewObjectID()
	data, err := json.Marshal(InsertResult{Acknowledged: true, InsertedID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"acknowledged":true,"insertedId":"`+id.Hex()+`"}`, string(data))
}

func TestCatalog_DecodesAnyStoredID(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"_id": "hero-1", "image": "a.png"})
	require.NoError(t, err)

	var slide SliderItem
	require.NoError(t, bson.Unmarshal(raw, &slide))
	assert.Equal(t, "hero-1", slide.ID)
	assert.Equal(t, "a.png", slide.Extra["image"])

	data, err := json.Marshal(slide)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"hero-1","image":"a.png"}`, string(data))

	raw, err = bson.Marshal(bson.M{"_id": int32(7), "author": "Bo"})
	require.NoError(t, err)
	var testimonial Testimonial
	require.NoError(t, bson.Unmarshal(raw, &testimonial))
	assert.Equal(t, int32(7), testimonial.ID)
}

func TestProduct_ObjectIDEncodesAsHex(t *testing.T) {
	id := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{"_id": id, "title": "Tote"})
	require.NoError(t, err)

	var p Product
	require.NoError(t, bson.Unmarshal(raw, &p))
	assert.Equal(t, id, p.ID)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"`+id.Hex()+`","title":"Tote"}`, string(data))
}
