package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/supakorn-kn/go-docproxy/errors"
	"go.mongodb.org/mongo-driver/bson"
)

type MatchType uint8

const (
	EqualMatchType     MatchType = 0
	PartialMatchType   MatchType = 1
	StartWithMatchType MatchType = 2
	EndWithMatchType   MatchType = 3
)

// SearchFields are the conventional document fields a search term is matched against.
var SearchFields = []string{"title", "location", "price", "availableSeats", "description"}

// ParseMatchType maps the match query parameter to a MatchType. An empty value means partial match.
func ParseMatchType(value string) (MatchType, error) {

	switch strings.ToLower(value) {
	case "", "partial":
		return PartialMatchType, nil
	case "exact":
		return EqualMatchType, nil
	case "prefix":
		return StartWithMatchType, nil
	case "suffix":
		return EndWithMatchType, nil
	default:
		return 0, errors.MatchTypeInvalidError.New(value)
	}
}

// SearchFilter builds a filter matching documents where any of SearchFields matches term.
// The term is matched literally. An empty term yields an empty filter, which matches every document.
func SearchFilter(term string, matchType MatchType) (bson.D, error) {

	if term == "" {
		return bson.D{}, nil
	}

	var value any = term
	if matchType != EqualMatchType {
		value = regexp.QuoteMeta(term)
	}

	conditions := make(bson.A, 0, len(SearchFields))
	for _, field := range SearchFields {

		matchBson, err := CreateMatchBson(field, value, matchType)
		if err != nil {
			return nil, err
		}

		conditions = append(conditions, matchBson)
	}

	return bson.D{{Key: "$or", Value: conditions}}, nil
}

func CreateMatchBson(key string, value any, matchType MatchType) (bson.D, error) {

	switch matchType {

	case EqualMatchType:
		return EqualMatchBson(key, value), nil

	case PartialMatchType:
		return PartialMatchBson(key, value), nil

	case StartWithMatchType:
		return StartWithMatchBson(key, value), nil

	case EndWithMatchType:
		return EndWithMatchBson(key, value), nil

	default:
		return nil, errors.MatchTypeInvalidError.New(matchType)
	}
}

// EqualMatchBson creates BSON for equal search (Case-sensitive)
func EqualMatchBson(key string, value any) bson.D {
	return bson.D{{Key: key, Value: value}}
}

// PartialMatchBson creates BSON for partial search (Case-insensitive)
func PartialMatchBson(key string, value any) bson.D {
	return bson.D{{Key: key, Value: bson.M{"$regex": value, "$options": "i"}}}
}

// StartWithMatchBson creates BSON for start with keyword search (Case-insensitive)
func StartWithMatchBson(key string, value any) bson.D {
	format := fmt.Sprintf("^%s", value)
	return bson.D{{Key: key, Value: bson.M{"$regex": format, "$options": "i"}}}
}

// EndWithMatchBson creates BSON for end with keyword search (Case-insensitive)
func EndWithMatchBson(key string, value any) bson.D {
	format := fmt.Sprintf("%s$", value)
	return bson.D{{Key: key, Value: bson.M{"$regex": format, "$options": "i"}}}
}
