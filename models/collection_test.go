package models

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/suite"
	"github.com/supakorn-kn/go-docproxy/errors"
	"github.com/supakorn-kn/go-docproxy/mongodb"
	"github.com/supakorn-kn/go-docproxy/mongodb/mongotest"
	"github.com/supakorn-kn/go-docproxy/objects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CollectionModelTestSuite struct {
	suite.Suite
	conn             *mongodb.MongoDBConn
	model            *CollectionModel
	insertedDocument objects.Document
}

func (s *CollectionModelTestSuite) SetupSuite() {

	s.conn = mongotest.NewTestConn(s.T(), "docproxy_models_test")

	model, err := NewCollectionModel(s.conn, "lessons", nil)
	s.Require().NoError(err, "Setup collection model failed")

	s.model = model
}

func (s *CollectionModelTestSuite) BeforeTest(suiteName, testName string) {

	if testName == "TestInsert" || testName == "TestList" || testName == "TestSearch" {
		return
	}

	inserted, err := s.model.Insert(context.Background(), fakeLesson())
	s.Require().NoError(err, "Setup test failed from inserting document")

	s.insertedDocument = inserted
}

func (s *CollectionModelTestSuite) AfterTest(suiteName, testName string) {

	_, err := s.model.Coll.DeleteMany(context.Background(), bson.D{})
	s.Require().NoError(err)
}

func (s *CollectionModelTestSuite) TestNewCollectionModel() {

	s.Run("Should throw error when collection name is not allowed", func() {

		_, err := NewCollectionModel(s.conn, "users", []string{"lessons"})
		s.Require().True(errors.IsError(err, errors.CollectionNameInvalidError.New("users")))
	})

	s.Run("Should throw error when store is not connected", func() {

		conn, err := mongodb.New(s.conn.Config())
		s.Require().NoError(err)

		_, err = NewCollectionModel(conn, "lessons", nil)
		s.Require().True(errors.IsError(err, errors.StoreNotReadyError.New()))
	})
}

func (s *CollectionModelTestSuite) TestInsert() {

	s.Run("Should insert document and assign ID", func() {

		doc := fakeLesson()

		inserted, err := s.model.Insert(context.Background(), doc)
		s.Require().NoError(err, "Inserting document failed")
		s.Require().NotEmpty(objects.DocumentID(inserted))
		s.Require().NotContains(doc, objects.IDKey, "Given document should be left untouched")

		var actual objects.Document
		s.Require().NoError(s.model.Coll.FindOne(context.Background(), bson.D{{Key: objects.IDKey, Value: inserted[objects.IDKey]}}).Decode(&actual))
		s.Require().Equal(inserted, actual, "Read data is not the same as inserted")
	})

	s.Run("Should throw error when insert document with existed ID", func() {

		inserted, err := s.model.Insert(context.Background(), fakeLesson())
		s.Require().NoError(err)

		duplicated := fakeLesson()
		duplicated[objects.IDKey] = inserted[objects.IDKey]

		_, err = s.model.Insert(context.Background(), duplicated)
		s.Require().ErrorIs(err, errors.DuplicatedObjectIDError.New())
	})
}

func (s *CollectionModelTestSuite) TestList() {

	s.Run("Should return empty list from empty collection", func() {

		actual, err := s.model.List(context.Background())
		s.Require().NoError(err)
		s.Require().NotNil(actual)
		s.Require().Empty(actual)
	})

	s.Run("Should contain every inserted document", func() {

		var expected []objects.Document
		for i := 0; i < 3; i++ {
			inserted, err := s.model.Insert(context.Background(), fakeLesson())
			s.Require().NoError(err)

			expected = append(expected, inserted)
		}

		actual, err := s.model.List(context.Background())
		s.Require().NoError(err)
		s.Require().Subset(actual, expected)
	})
}

func (s *CollectionModelTestSuite) TestGetByID() {

	s.Run("Should get the document by ID properly", func() {

		actual, err := s.model.GetByID(context.Background(), s.insertedDocument[objects.IDKey].(primitive.ObjectID))
		s.Require().NoError(err)
		s.Require().Equal(s.insertedDocument, actual)
	})

	s.Run("Should return nil without error when ID does not exist", func() {

		actual, err := s.model.GetByID(context.Background(), primitive.NewObjectID())
		s.Require().NoError(err)
		s.Require().Nil(actual)
	})

}

func (s *CollectionModelTestSuite) TestUpdateByID() {

	itemID := s.insertedDocument[objects.IDKey].(primitive.ObjectID)

	s.Run("Should update only given fields", func() {

		matched, err := s.model.UpdateByID(context.Background(), itemID, objects.Document{"price": "25"})
		s.Require().NoError(err)
		s.Require().True(matched)

		actual, err := s.model.GetByID(context.Background(), itemID)
		s.Require().NoError(err)

		expected := objects.WithoutID(s.insertedDocument)
		expected[objects.IDKey] = s.insertedDocument[objects.IDKey]
		expected["price"] = "25"
		s.Require().Equal(expected, actual)
	})

	s.Run("Should ignore ID field in update", func() {

		matched, err := s.model.UpdateByID(context.Background(), itemID, objects.Document{objects.IDKey: primitive.NewObjectID(), "title": "Renamed"})
		s.Require().NoError(err)
		s.Require().True(matched)

		actual, err := s.model.GetByID(context.Background(), itemID)
		s.Require().NoError(err)
		s.Require().Equal(s.insertedDocument[objects.IDKey], actual[objects.IDKey])
		s.Require().Equal("Renamed", actual["title"])
	})

	s.Run("Should report match for empty update of existed document", func() {

		matched, err := s.model.UpdateByID(context.Background(), itemID, objects.Document{})
		s.Require().NoError(err)
		s.Require().True(matched)
	})

	s.Run("Should report no match when ID does not exist", func() {

		matched, err := s.model.UpdateByID(context.Background(), primitive.NewObjectID(), objects.Document{"price": "1"})
		s.Require().NoError(err)
		s.Require().False(matched)

		matched, err = s.model.UpdateByID(context.Background(), primitive.NewObjectID(), objects.Document{})
		s.Require().NoError(err)
		s.Require().False(matched)
	})
}

func (s *CollectionModelTestSuite) TestSearch() {

	math := objects.Document{"title": "Math", "location": "Hendon", "price": "100", "availableSeats": "5", "description": "Algebra basics\nmusic of numbers"}
	music := objects.Document{"title": "Music", "location": "Colindale", "price": "80", "availableSeats": "3", "description": "Piano for c++ devs"}
	other := objects.Document{"name": "no conventional fields"}

	var inserted []objects.Document
	for _, doc := range []objects.Document{math, music, other} {
		result, err := s.model.Insert(context.Background(), doc)
		s.Require().NoError(err, "Insert documents before testing failed")

		inserted = append(inserted, result)
	}

	var testCases = map[string]struct {
		Term      string
		MatchType MatchType
		Expected  []objects.Document
	}{
		"Case-insensitive title":       {Term: "MATH", MatchType: PartialMatchType, Expected: inserted[:1]},
		"Substring of location":        {Term: "lind", MatchType: PartialMatchType, Expected: inserted[1:2]},
		"String price":                 {Term: "10", MatchType: PartialMatchType, Expected: inserted[:1]},
		"Shared substring":             {Term: "m", MatchType: PartialMatchType, Expected: inserted[:2]},
		"Metacharacters matched as-is": {Term: "c++", MatchType: PartialMatchType, Expected: inserted[1:2]},
		"Prefix of whole field only":   {Term: "mu", MatchType: StartWithMatchType, Expected: inserted[1:2]},
		"Suffix of whole field only":   {Term: "basics", MatchType: EndWithMatchType, Expected: []objects.Document{}},
		"Exact":                        {Term: "Hendon", MatchType: EqualMatchType, Expected: inserted[:1]},
		"Empty term matches all":       {Term: "", MatchType: PartialMatchType, Expected: inserted},
		"No match":                     {Term: "sofa", MatchType: PartialMatchType, Expected: []objects.Document{}},
	}

	for name, testCase := range testCases {
		s.Run(name, func() {

			actual, err := s.model.Search(context.Background(), testCase.Term, testCase.MatchType)
			s.Require().NoError(err)
			s.Require().NotNil(actual)
			s.Require().ElementsMatch(testCase.Expected, actual)
		})
	}

	s.Run("Empty term should equal list", func() {

		listed, err := s.model.List(context.Background())
		s.Require().NoError(err)

		searched, err := s.model.Search(context.Background(), "", PartialMatchType)
		s.Require().NoError(err)
		s.Require().ElementsMatch(listed, searched)
	})
}

func TestCollectionModel(t *testing.T) {
	suite.Run(t, new(CollectionModelTestSuite))
}

func fakeLesson() objects.Document {

	return objects.Document{
		"title":          gofakeit.JobTitle(),
		"location":       gofakeit.City(),
		"price":          gofakeit.DigitN(3),
		"availableSeats": gofakeit.DigitN(1),
		"description":    gofakeit.SentenceSimple(),
	}
}
