// Package tasks holds the ordered task list and its storage backends.
//
// A task is a plain name. The list keeps insertion order, accepts duplicates
// and empty names, and Remove only ever drops the first matching entry.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/config"
)

// ErrUnknownBackend is returned by Open for an unsupported store.backend.
var ErrUnknownBackend = errors.New("unknown store backend")

// Store is the task list. Every call is atomic with respect to the others.
type Store interface {
	// Add appends name and returns the resulting list.
	Add(ctx context.Context, name string) ([]string, error)

	// Remove drops the first occurrence of name, if any. removed reports
	// whether an entry was dropped; a missing name is not an error.
	Remove(ctx context.Context, name string) (list []string, removed bool, err error)

	// List returns a copy of the current list in insertion order.
	List(ctx context.Context) ([]string, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Open builds the backend selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory, "":
		log.Info("using in-memory task store")
		return NewMemoryStore(), nil
	case config.BackendRedis:
		log.WithFields(logrus.Fields{"addr": cfg.Redis.Addr, "key": cfg.Redis.Key}).Info("using redis task store")
		return NewRedisStore(ctx, cfg.Redis)
	case config.BackendMongo:
		log.WithFields(logrus.Fields{"database": cfg.Mongo.Database, "collection": cfg.Mongo.Collection}).Info("using mongo task store")
		return NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Store.Backend)
	}
}

// orEmpty keeps JSON output as [] rather than null.
func orEmpty(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
