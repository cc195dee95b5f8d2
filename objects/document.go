package objects

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDKey is the field holding the store-assigned document identifier.
const IDKey = "_id"

// Document is a schema-less record. Nested documents decode as the same map type.
type Document = bson.M

// DocumentID returns the hex form of the document's ObjectID, or "" when the document has none.
func DocumentID(doc Document) string {

	id, ok := doc[IDKey].(primitive.ObjectID)
	if !ok {
		return ""
	}

	return id.Hex()
}

// WithoutID returns a shallow copy of doc minus its identifier field.
func WithoutID(doc Document) Document {

	fields := make(Document, len(doc))
	for key, value := range doc {
		if key != IDKey {
			fields[key] = value
		}
	}

	return fields
}
