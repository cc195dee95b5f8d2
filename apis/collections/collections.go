package collections

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-docproxy/errors"
	"github.com/supakorn-kn/go-docproxy/metric"
	"github.com/supakorn-kn/go-docproxy/models"
	"github.com/supakorn-kn/go-docproxy/mongodb"
	"github.com/supakorn-kn/go-docproxy/objects"
)

const collectionContextKey = "collection"

type CollectionsAPI struct {
	conn               *mongodb.MongoDBConn
	allowedCollections []string
	metrics            *metric.Metrics
}

// NewCollectionsAPI serves any collection of conn's database. A non-empty allowedCollections restricts the names.
func NewCollectionsAPI(conn *mongodb.MongoDBConn, allowedCollections []string, metrics *metric.Metrics) *CollectionsAPI {

	api := new(CollectionsAPI)
	api.conn = conn
	api.allowedCollections = allowedCollections
	api.metrics = metrics

	return api
}

func (api CollectionsAPI) BindCollection(ctx *gin.Context) error {

	model, err := models.NewCollectionModel(api.conn, ctx.Param("collectionName"), api.allowedCollections)
	if err != nil {
		return err
	}

	ctx.Set(collectionContextKey, model)

	return nil
}

func (api CollectionsAPI) List(ctx *gin.Context) ([]objects.Document, error) {

	model, err := api.model(ctx)
	if err != nil {
		return nil, err
	}

	documents, err := model.List(ctx.Request.Context())
	api.observe("list", err)

	return documents, err
}

func (api CollectionsAPI) Insert(ctx *gin.Context) (objects.Document, error) {

	model, err := api.model(ctx)
	if err != nil {
		return nil, err
	}

	document, err := bindDocument(ctx)
	if err != nil {
		return nil, err
	}

	inserted, err := model.Insert(ctx.Request.Context(), document)
	api.observe("insert", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Document inserted", "collection", model.Name, "id", objects.DocumentID(inserted))

	return inserted, nil
}

func (api CollectionsAPI) ReadOne(itemID string, ctx *gin.Context) (objects.Document, error) {

	model, err := api.model(ctx)
	if err != nil {
		return nil, err
	}

	objectID, err := models.ParseObjectID(itemID)
	if err != nil {
		return nil, err
	}

	document, err := model.GetByID(ctx.Request.Context(), objectID)
	api.observe("get", err)

	return document, err
}

func (api CollectionsAPI) Update(itemID string, ctx *gin.Context) (bool, error) {

	model, err := api.model(ctx)
	if err != nil {
		return false, err
	}

	objectID, err := models.ParseObjectID(itemID)
	if err != nil {
		return false, err
	}

	fields, err := bindDocument(ctx)
	if err != nil {
		return false, err
	}

	matched, err := model.UpdateByID(ctx.Request.Context(), objectID, fields)
	api.observe("update", err)

	return matched, err
}

func (api CollectionsAPI) Search(ctx *gin.Context) ([]objects.Document, error) {

	model, err := api.model(ctx)
	if err != nil {
		return nil, err
	}

	matchType, err := models.ParseMatchType(ctx.Query("match"))
	if err != nil {
		return nil, err
	}

	documents, err := model.Search(ctx.Request.Context(), ctx.Query("q"), matchType)
	api.observe("search", err)

	return documents, err
}

func (api CollectionsAPI) model(ctx *gin.Context) (*models.CollectionModel, error) {

	if value, ok := ctx.Get(collectionContextKey); ok {
		if model, ok := value.(*models.CollectionModel); ok {
			return model, nil
		}
	}

	if err := api.BindCollection(ctx); err != nil {
		return nil, err
	}

	return ctx.MustGet(collectionContextKey).(*models.CollectionModel), nil
}

// observe counts a call that reached the store. Requests rejected before that are not counted.
func (api CollectionsAPI) observe(operation string, err error) {

	if api.metrics != nil {
		api.metrics.ObserveStoreOperation(operation, err)
	}
}

// bindDocument parses the body as a single JSON object.
func bindDocument(ctx *gin.Context) (objects.Document, error) {

	var document objects.Document
	if err := ctx.ShouldBindJSON(&document); err != nil {
		return nil, errors.RequestBodyInvalidError.New(err.Error())
	}

	if document == nil {
		return nil, errors.RequestBodyInvalidError.New("null")
	}

	return document, nil
}
