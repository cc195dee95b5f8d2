package env

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerPort     = 3000
	DefaultAssetsDir      = "assets"
	DefaultMongoDBHost    = "localhost"
	DefaultMongoDBPort    = 27017
	DefaultMongoDBName    = "webstore"
	DefaultConnectTimeout = 10 * time.Second
)

type Env struct {
	Server  ServerConfig  `yaml:"server"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
}

type ServerConfig struct {
	Port               int      `yaml:"port"`
	AssetsDir          string   `yaml:"assets_dir"`
	AllowedCollections []string `yaml:"allowed_collections"`
	LogFormat          string   `yaml:"log_format"`
}

type MongoDBConfig struct {
	URI            string        `yaml:"uri"`
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	DB             string        `yaml:"db"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// ConnectionURI returns the explicit connection string when one is configured, otherwise builds it from host, port and credentials.
func (c MongoDBConfig) ConnectionURI() string {

	if c.URI != "" {
		return c.URI
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
	}

	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	return u.String()
}

func defaultEnv() Env {

	return Env{
		Server: ServerConfig{
			Port:      DefaultServerPort,
			AssetsDir: DefaultAssetsDir,
			LogFormat: "text",
		},
		MongoDB: MongoDBConfig{
			Host:           DefaultMongoDBHost,
			Port:           DefaultMongoDBPort,
			DB:             DefaultMongoDBName,
			ConnectTimeout: DefaultConnectTimeout,
		},
	}
}

// Load reads the optional YAML file named by CONFIG_FILE, then applies environment overrides on top of it.
func Load() (*Env, error) {

	env := defaultEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {

		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(b, &env); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyOverrides(&env); err != nil {
		return nil, err
	}

	return &env, nil
}

func applyOverrides(env *Env) error {

	serverPort := lookup("PORT", "SERVER_PORT")
	if serverPort != "" {
		parsed, err := strconv.Atoi(serverPort)
		if err != nil {
			return fmt.Errorf("invalid server port %q: %w", serverPort, err)
		}

		env.Server.Port = parsed
	}

	if v := lookup("ASSETS_DIR"); v != "" {
		env.Server.AssetsDir = v
	}

	if v := lookup("ALLOWED_COLLECTIONS"); v != "" {
		env.Server.AllowedCollections = splitList(v)
	}

	if v := lookup("LOG_FORMAT"); v != "" {
		env.Server.LogFormat = strings.ToLower(v)
	}

	if v := lookup("MONGODB_URI"); v != "" {
		env.MongoDB.URI = v
	}

	if v := lookup("MONGODB_HOST"); v != "" {
		env.MongoDB.Host = v
	}

	mongoDBPort := lookup("MONGODB_PORT")
	if mongoDBPort != "" {
		parsed, err := strconv.Atoi(mongoDBPort)
		if err != nil {
			return fmt.Errorf("invalid MongoDB port %q: %w", mongoDBPort, err)
		}

		env.MongoDB.Port = parsed
	}

	if v := lookup("MONGODB_USER"); v != "" {
		env.MongoDB.User = v
	}

	if v := lookup("MONGODB_PASSWORD"); v != "" {
		env.MongoDB.Password = v
	}

	if v := lookup("MONGODB_NAME"); v != "" {
		env.MongoDB.DB = v
	}

	connectTimeout := lookup("MONGODB_CONNECT_TIMEOUT")
	if connectTimeout != "" {
		parsed, err := time.ParseDuration(connectTimeout)
		if err != nil {
			return fmt.Errorf("invalid MongoDB connect timeout %q: %w", connectTimeout, err)
		}

		env.MongoDB.ConnectTimeout = parsed
	}

	return nil
}

// lookup returns the value of the first key that is set and not blank.
func lookup(keys ...string) string {

	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}

	return ""
}

func splitList(v string) []string {

	var list []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}

	return list
}
