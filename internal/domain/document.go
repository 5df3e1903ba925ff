package domain

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertResult is the acknowledgment returned after a document is stored.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// DeleteResult is the acknowledgment returned after a delete. A zero
// DeletedCount is not an error.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// marshalFlat encodes known and then lays the extra keys next to it, so that
// client supplied fields come back at the top level of the object.
func marshalFlat(known interface{}, extra map[string]interface{}) ([]byte, error) {
	base, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}

	out := make(map[string]interface{}, len(extra)+8)
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// unmarshalFlat decodes data into known and returns every key that is not in
// knownKeys.
func unmarshalFlat(data []byte, known interface{}, knownKeys ...string) (map[string]interface{}, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}

	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range knownKeys {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}
