package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ImageRef decodes a category image whether it was stored as a bare location
// string or as an object carrying a url field.
type ImageRef struct {
	URL string
}

type imageObject struct {
	URL string `json:"url" bson:"url"`
}

// Image returns nil when no usable location is present.
func (r ImageRef) Image() *CategoryImage {
	url := strings.TrimSpace(r.URL)
	if url == "" {
		return nil
	}
	return &CategoryImage{URL: url}
}

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		r.URL = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		r.URL = strings.TrimSpace(value)
		return nil
	case '{':
		var obj imageObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		r.URL = strings.TrimSpace(obj.URL)
		return nil
	default:
		return fmt.Errorf("cannot decode %s into ImageRef", string(trimmed))
	}
}

// UnmarshalBSONValue accepts string and embedded document values so legacy
// documents decode without failing the whole catalog load.
func (r *ImageRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		r.URL = ""
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		r.URL = strings.TrimSpace(value)
		return nil
	case bsontype.EmbeddedDocument:
		var obj imageObject
		if err := bson.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.URL = strings.TrimSpace(obj.URL)
		return nil
	default:
		return fmt.Errorf("cannot decode %s into ImageRef", t)
	}
}

// MarshalBSONValue always writes the object form.
func (r ImageRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if strings.TrimSpace(r.URL) == "" {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(imageObject{URL: r.URL})
}
