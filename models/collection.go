package models

import (
	"context"
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	serverError "github.com/supakorn-kn/go-docproxy/errors"
	"github.com/supakorn-kn/go-docproxy/mongodb"
	"github.com/supakorn-kn/go-docproxy/objects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxCollectionNameLen keeps "<db>.<collection>" within MongoDB's namespace limit for usual database names.
const maxCollectionNameLen = 120

// CollectionModel runs the gateway operations against one named collection.
// It is cheap to build and is derived again for every request.
type CollectionModel struct {
	Coll *mongo.Collection
	Name string
}

// ValidateCollectionName rejects names MongoDB cannot store and, when allowed is not empty, names outside it.
func ValidateCollectionName(name string, allowed []string) error {

	invalid := name == "" ||
		len(name) > maxCollectionNameLen ||
		!utf8.ValidString(name) ||
		strings.ContainsAny(name, "$\x00") ||
		strings.HasPrefix(name, "system.") ||
		strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, ".")

	if invalid {
		return serverError.CollectionNameInvalidError.New(name)
	}

	if len(allowed) > 0 && !slices.Contains(allowed, name) {
		return serverError.CollectionNameInvalidError.New(name)
	}

	return nil
}

func NewCollectionModel(conn *mongodb.MongoDBConn, name string, allowed []string) (*CollectionModel, error) {

	if err := ValidateCollectionName(name, allowed); err != nil {
		return nil, err
	}

	coll := conn.GetCollection(name)
	if coll == nil {
		return nil, serverError.StoreNotReadyError.New()
	}

	return &CollectionModel{Coll: coll, Name: name}, nil
}

// ParseObjectID converts the hex identifier from a URL into the store's identifier type.
func ParseObjectID(itemID string) (primitive.ObjectID, error) {

	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return primitive.NilObjectID, serverError.ObjectIDInvalidError.New(itemID)
	}

	return objectID, nil
}

// List returns every document in natural order. An empty collection gives an empty, non-nil slice.
func (m CollectionModel) List(ctx context.Context) ([]objects.Document, error) {
	return m.find(ctx, bson.D{})
}

// Insert stores doc as given and returns it with the identifier the store assigned.
func (m CollectionModel) Insert(ctx context.Context, doc objects.Document) (objects.Document, error) {

	inserted := make(objects.Document, len(doc)+1)
	for key, value := range doc {
		inserted[key] = value
	}

	if _, ok := inserted[objects.IDKey]; !ok {
		inserted[objects.IDKey] = primitive.NewObjectID()
	}

	result, err := m.Coll.InsertOne(ctx, inserted)
	if err != nil {

		if mongo.IsDuplicateKeyError(err) {
			return nil, serverError.DuplicatedObjectIDError.New(inserted[objects.IDKey])
		}

		return nil, err
	}

	inserted[objects.IDKey] = result.InsertedID

	return inserted, nil
}

// GetByID returns the matching document, or nil without error when nothing matches.
func (m CollectionModel) GetByID(ctx context.Context, objectID primitive.ObjectID) (objects.Document, error) {

	var doc objects.Document
	err := m.Coll.FindOne(ctx, EqualMatchBson(objects.IDKey, objectID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// UpdateByID sets the given fields on the matching document, leaving the others untouched.
// It reports whether exactly one document matched. The identifier field is never updated.
func (m CollectionModel) UpdateByID(ctx context.Context, objectID primitive.ObjectID, fields objects.Document) (bool, error) {

	filter, err := CreateMatchBson(objects.IDKey, objectID, EqualMatchType)
	if err != nil {
		return false, err
	}

	updateFields := objects.WithoutID(fields)
	if len(updateFields) == 0 {

		// $set refuses an empty document, so only check the target exists
		count, err := m.Coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return false, err
		}

		return count == 1, nil
	}

	result, err := m.Coll.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: updateFields}})
	if err != nil {
		return false, err
	}

	return result.MatchedCount == 1, nil
}

// Search returns documents whose conventional fields match term. See SearchFilter.
func (m CollectionModel) Search(ctx context.Context, term string, matchType MatchType) ([]objects.Document, error) {

	filter, err := SearchFilter(term, matchType)
	if err != nil {
		return nil, err
	}

	return m.find(ctx, filter)
}

func (m CollectionModel) find(ctx context.Context, filter bson.D) ([]objects.Document, error) {

	cur, err := m.Coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	documents := []objects.Document{}
	if err := cur.All(ctx, &documents); err != nil {
		return nil, err
	}

	if documents == nil {
		documents = []objects.Document{}
	}

	return documents, nil
}
