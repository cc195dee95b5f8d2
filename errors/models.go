package errors

const (
	ObjectIDInvalidErrorCode       = 200_001
	CollectionNameInvalidErrorCode = 200_002
	MatchTypeInvalidErrorCode      = 200_003
	DuplicatedObjectIDErrorCode    = 200_004
)

// ObjectIDInvalidError indicates user gives an ID that cannot be parsed as a document ID
var ObjectIDInvalidError = new(ObjectIDInvalidErrorCode, "ObjectIDInvalid", "ID %s is not a valid document ID")

// CollectionNameInvalidError indicates user gives a collection name that is malformed or not allowed
var CollectionNameInvalidError = new(CollectionNameInvalidErrorCode, "CollectionNameInvalid", "collection name %q is invalid or not allowed")

// MatchTypeInvalidError indicates an invalid or unsupported match type was requested when building a search filter
var MatchTypeInvalidError = new(MatchTypeInvalidErrorCode, "MatchTypeInvalid", "Match type %v is invalid or unsupported")

// DuplicatedObjectIDError indicates user inserts a document using an ID that is already in used
var DuplicatedObjectIDError = new(DuplicatedObjectIDErrorCode, "DuplicatedObjectID", "document ID %v is already used")
