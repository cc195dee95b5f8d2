package mongodb

import (
	"context"
	"errors"
	"sync"

	"github.com/supakorn-kn/go-docproxy/env"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDBConn struct {
	config env.MongoDBConfig
	opts   *options.ClientOptions

	mu     sync.RWMutex
	client *mongo.Client
}

// Connect opens the client and pings the primary, so a returned nil error means the store is usable.
func (db *MongoDBConn) Connect(ctx context.Context) error {

	client, err := mongo.Connect(ctx, db.opts)
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	db.mu.Lock()
	db.client = client
	db.mu.Unlock()

	return nil
}

func (db *MongoDBConn) Disconnect(ctx context.Context) error {

	db.mu.Lock()
	client := db.client
	db.client = nil
	db.mu.Unlock()

	if client == nil {
		return nil
	}

	return client.Disconnect(ctx)
}

func (db *MongoDBConn) IsConnected() bool {

	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.client != nil
}

// Ping checks the primary is reachable through the established client.
func (db *MongoDBConn) Ping(ctx context.Context) error {

	client := db.Client()
	if client == nil {
		return ErrNotConnected
	}

	return client.Ping(ctx, readpref.Primary())
}

func (db *MongoDBConn) Client() *mongo.Client {

	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.client
}

func (db *MongoDBConn) Config() env.MongoDBConfig {
	return db.config
}

func (db *MongoDBConn) DatabaseName() string {
	return db.config.DB
}

func (db *MongoDBConn) GetDatabase() *mongo.Database {

	client := db.Client()
	if client == nil {
		return nil
	}

	return client.Database(db.config.DB)
}

func (db *MongoDBConn) GetCollection(collectionName string) *mongo.Collection {

	database := db.GetDatabase()
	if database == nil {
		return nil
	}

	return database.Collection(collectionName)
}

var ErrNotConnected = errors.New("mongodb: client is not connected")

func New(config env.MongoDBConfig) (*MongoDBConn, error) {

	if config.DB == "" {
		return nil, errors.New("mongodb: database name must not be empty")
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(config.ConnectionURI()).SetServerAPIOptions(serverAPI)
	if config.ConnectTimeout > 0 {
		opts.SetConnectTimeout(config.ConnectTimeout).SetServerSelectionTimeout(config.ConnectTimeout)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &MongoDBConn{
		config: config,
		opts:   opts,
	}, nil
}

func InitConnection(ctx context.Context, config env.MongoDBConfig) (*MongoDBConn, error) {

	mongodbConn, err := New(config)
	if err != nil {
		return nil, err
	}

	if err := mongodbConn.Connect(ctx); err != nil {
		return nil, err
	}

	return mongodbConn, nil
}
