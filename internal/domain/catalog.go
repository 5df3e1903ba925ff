package domain

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Catalog documents are read-only here and returned as stored. ID holds
// whatever _id the store has, usually an ObjectID but a string or number
// for hand-seeded documents. After a round trip
// through the JSON cache an ObjectID comes back as its hex string.

type Product struct {
	ID    interface{} `bson:"_id,omitempty" json:"_id"`
	Extra bson.M      `bson:",inline" json:"-"`
}

type SliderItem struct {
	ID    interface{} `bson:"_id,omitempty" json:"_id"`
	Extra bson.M      `bson:",inline" json:"-"`
}

type AdBanner struct {
	ID    interface{} `bson:"_id,omitempty" json:"_id"`
	Extra bson.M      `bson:",inline" json:"-"`
}

type Testimonial struct {
	ID    interface{} `bson:"_id,omitempty" json:"_id"`
	Extra bson.M      `bson:",inline" json:"-"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return marshalFlat(plain(p), p.Extra)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var v plain
	extra, err := unmarshalFlat(data, &v, "_id")
	if err != nil {
		return err
	}
	*p = Product(v)
	p.Extra = extra
	return nil
}

func (s SliderItem) MarshalJSON() ([]byte, error) {
	type plain SliderItem
	return marshalFlat(plain(s), s.Extra)
}

func (s *SliderItem) UnmarshalJSON(data []byte) error {
	type plain SliderItem
	var v plain
	extra, err := unmarshalFlat(data, &v, "_id")
	if err != nil {
		return err
	}
	*s = SliderItem(v)
	s.Extra = extra
	return nil
}

func (a AdBanner) MarshalJSON() ([]byte, error) {
	type plain AdBanner
	return marshalFlat(plain(a), a.Extra)
}

func (a *AdBanner) UnmarshalJSON(data []byte) error {
	type plain AdBanner
	var v plain
	extra, err := unmarshalFlat(data, &v, "_id")
	if err != nil {
		return err
	}
	*a = AdBanner(v)
	a.Extra = extra
	return nil
}

func (t Testimonial) MarshalJSON() ([]byte, error) {
	type plain Testimonial
	return marshalFlat(plain(t), t.Extra)
}

func (t *Testimonial) UnmarshalJSON(data []byte) error {
	type plain Testimonial
	var v plain
	extra, err := unmarshalFlat(data, &v, "_id")
	if err != nil {
		return err
	}
	*t = Testimonial(v)
	t.Extra = extra
	return nil
}
