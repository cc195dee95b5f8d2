// Package mongotest provides a disposable MongoDB for package tests.
package mongotest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/supakorn-kn/go-docproxy/env"
	"github.com/supakorn-kn/go-docproxy/mongodb"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	mongoImage     = "mongo:7"
	startTimeout   = 60 * time.Second
	connectTimeout = 10 * time.Second
)

// NewTestConn returns a connected MongoDBConn on a fresh database.
// TEST_MONGODB_URI points the tests at an existing server; otherwise a container is started.
// The test is skipped when neither is available. The database is dropped on cleanup.
func NewTestConn(t testing.TB, databaseName string) *mongodb.MongoDBConn {
	t.Helper()

	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {

		containerURI, terminate, err := startContainer(context.Background())
		if err != nil {
			t.Skipf("MongoDB is not available: %v", err)
		}

		t.Cleanup(terminate)
		uri = containerURI
	}

	config := env.MongoDBConfig{
		URI:            uri,
		DB:             fmt.Sprintf("%s_%d", databaseName, time.Now().UnixNano()),
		ConnectTimeout: connectTimeout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	conn, err := mongodb.InitConnection(ctx, config)
	if err != nil {
		t.Skipf("Connecting to MongoDB at %s failed: %v", uri, err)
	}

	t.Cleanup(func() {
		_ = conn.GetDatabase().Drop(context.Background())
		_ = conn.Disconnect(context.Background())
	})

	return conn
}

func startContainer(ctx context.Context) (uri string, terminate func(), err error) {

	// testcontainers panics when no docker host can be found
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start container: %v", r)
		}
	}()

	req := testcontainers.ContainerRequest{
		Image:        mongoImage,
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Waiting for connections"),
			wait.ForListeningPort("27017/tcp"),
		).WithDeadline(startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return "", nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		_ = container.Terminate(ctx)
		return "", nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	terminate = func() {
		_ = container.Terminate(context.Background())
	}

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), terminate, nil
}
