// Package store implements the local cache database: a sqlite mirror of the
// remote catalog plus the on-device cart and locally registered users.
package store

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/stream"
)

// schemaVersion is bumped on any schema change. The cache is a mirror of the
// remote source of truth, so a version mismatch wipes and recreates all
// tables instead of migrating in place.
const schemaVersion = 1

type schemaInfo struct {
	ID      uint `gorm:"primaryKey"`
	Version int
}

func (schemaInfo) TableName() string { return "schema_info" }

// Store owns the cache database handle and the per-table change notifiers
// the reactive reads are driven by.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger

	productsChanged *stream.Notifier
	cartChanged     *stream.Notifier
}

// Open opens (creating if needed) the cache database at path.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	s := &Store{
		db:              db,
		log:             log,
		productsChanged: stream.NewNotifier(),
		cartChanged:     stream.NewNotifier(),
	}

	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// migrate applies the destructive migration policy: if the stored schema
// version differs from the compiled one, every table is dropped and recreated.
func (s *Store) migrate() error {
	tables := []interface{}{
		&model.CartItem{},
		&model.Product{},
		&model.User{},
	}

	var info schemaInfo
	hasInfo := s.db.Migrator().HasTable(&schemaInfo{})
	if hasInfo {
		if err := s.db.First(&info).Error; err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("read schema version: %w", err)
		}
	}

	if hasInfo && info.Version != schemaVersion {
		s.log.Warn().
			Int("have", info.Version).
			Int("want", schemaVersion).
			Msg("cache schema changed, wiping all tables")
		for _, t := range tables {
			if err := s.db.Migrator().DropTable(t); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
		if err := s.db.Migrator().DropTable(&schemaInfo{}); err != nil {
			return fmt.Errorf("drop schema info: %w", err)
		}
	}

	if err := s.db.AutoMigrate(&model.Product{}, &model.CartItem{}, &model.User{}, &schemaInfo{}); err != nil {
		return fmt.Errorf("auto-migrate cache: %w", err)
	}

	return s.db.Where(schemaInfo{ID: 1}).
		Assign(schemaInfo{ID: 1, Version: schemaVersion}).
		FirstOrCreate(&schemaInfo{}).Error
}

// Products returns the product table accessor.
func (s *Store) Products() ProductStore {
	return &productStore{store: s}
}

// Cart returns the cart table accessor.
func (s *Store) Cart() CartStore {
	return &cartStore{store: s}
}

// Users returns the local user table accessor.
func (s *Store) Users() UserStore {
	return &userStore{store: s}
}

// observe emits the result of query immediately and again after every tick
// from changed, until ctx is cancelled. Query failures are logged and the
// previous snapshot stands.
func observe[T any](ctx context.Context, s *Store, changed *stream.Notifier, query func(context.Context) (T, error)) <-chan T {
	out := make(chan T, 1)
	ticks := changed.Subscribe(ctx)

	emit := func() {
		v, err := query(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.log.Error().Err(err).Msg("cache observation query failed")
			}
			return
		}
		for {
			select {
			case out <- v:
				return
			default:
			}
			select {
			case <-out:
			default:
			}
		}
	}

	go func() {
		defer close(out)
		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				emit()
			}
		}
	}()

	return out
}
