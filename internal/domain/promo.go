package domain

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PromoCode is a discount rule. Code and DiscountPercent are required on
// create; any other fields are kept as sent.
type PromoCode struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Code            string             `bson:"code" json:"code"`
	DiscountPercent float64            `bson:"discountPercent" json:"discountPercent"`
	Extra           bson.M             `bson:",inline" json:"-"`
}

func (p PromoCode) MarshalJSON() ([]byte, error) {
	type plain PromoCode
	return marshalFlat(plain(p), p.Extra)
}

func (p *PromoCode) UnmarshalJSON(data []byte) error {
	type plain PromoCode
	var v plain
	extra, err := unmarshalFlat(data, &v, "_id", "code", "discountPercent")
	if err != nil {
		return err
	}
	*p = PromoCode(v)
	p.Extra = extra
	return nil
}
