package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"frontline/internal/domain"
	"frontline/internal/pkg/logger"
)

const (
	connectTimeout      = 10 * time.Second
	defaultDatabaseName = "test"
)

var (
	ErrConfiguration = errors.New("database configuration error")
	ErrConnection    = errors.New("database connection error")
)

type Backend string

const (
	BackendNone     Backend = ""
	BackendMongo    Backend = "mongodb"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// Conn is the process-wide store handle. It is created once in main and
// handed to whatever needs it; Connect may be called again safely.
type Conn struct {
	mu      sync.Mutex
	backend Backend
	dbName  string
	log     *logger.Logger

	client *mongo.Client
	mongo  *mongo.Database
	sql    *gorm.DB
}

// New returns an unconnected handle. dbName overrides the database named in a
// Mongo URI and is ignored for relational backends. A nil log discards
// connection events.
func New(dbName string, log *logger.Logger) *Conn {
	if log == nil {
		log = logger.Nop()
	}
	return &Conn{dbName: strings.TrimSpace(dbName), log: log}
}

// Connect opens the store named by uri. A second call on a connected handle is
// a no-op. Mongo URIs use the document store; postgres URIs and anything else
// (a sqlite file or ":memory:") go through gorm.
func (c *Conn) Connect(ctx context.Context, uri string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != BackendNone {
		return nil
	}

	uri = strings.TrimSpace(uri)
	if uri == "" {
		return fmt.Errorf("%w: connection URI is missing", ErrConfiguration)
	}

	switch {
	case strings.HasPrefix(uri, "mongodb://") || strings.HasPrefix(uri, "mongodb+srv://"):
		return c.connectMongo(ctx, uri)
	case strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://"):
		c.log.Info("connecting to database", "backend", BackendPostgres)
		return c.connectSQL(postgres.Open(uri), BackendPostgres)
	default:
		c.log.Info("connecting to database", "backend", BackendSQLite, "dsn", uri)
		return c.connectSQL(gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        uri,
		}), BackendSQLite)
	}
}

func (c *Conn) connectMongo(ctx context.Context, uri string) error {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		c.log.Error("database ping failed", "backend", BackendMongo, "error", err)
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	name := c.dbName
	if name == "" {
		name = cs.Database
	}
	if name == "" {
		name = defaultDatabaseName
	}

	c.client = client
	c.mongo = client.Database(name)
	c.backend = BackendMongo
	c.log.Info("database connected", "backend", BackendMongo, "database", name)
	return nil
}

func (c *Conn) connectSQL(dialector gorm.Dialector, backend Backend) error {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if err := db.AutoMigrate(&domain.Form{}); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("%w: migrate: %v", ErrConnection, err)
	}

	c.sql = db
	c.backend = backend
	c.log.Info("database connected", "backend", backend)
	return nil
}

func (c *Conn) Backend() Backend {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backend
}

// Mongo returns the document database, or nil when another backend is open.
func (c *Conn) Mongo() *mongo.Database {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mongo
}

// SQL returns the gorm handle, or nil when the document store is open.
func (c *Conn) SQL() *gorm.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sql
}

// Ping checks that the open backend still answers.
func (c *Conn) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.backend {
	case BackendMongo:
		return c.client.Ping(ctx, nil)
	case BackendPostgres, BackendSQLite:
		sqlDB, err := c.sql.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	default:
		return fmt.Errorf("%w: not connected", ErrConnection)
	}
}

// Close releases the connection. The handle can be connected again afterwards.
func (c *Conn) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	switch c.backend {
	case BackendMongo:
		err = c.client.Disconnect(ctx)
	case BackendPostgres, BackendSQLite:
		sqlDB, dbErr := c.sql.DB()
		if dbErr != nil {
			err = dbErr
			break
		}
		err = sqlDB.Close()
	}

	if c.backend != BackendNone {
		c.log.Info("database closed", "backend", c.backend)
	}
	c.client, c.mongo, c.sql = nil, nil, nil
	c.backend = BackendNone
	return err
}
