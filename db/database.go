package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store owns the durable catalog, version history, profile registry and
// per-profile mod status. All operations take the profile name explicitly;
// the shell tracks which profile is current (see Session).
type Store struct {
	db *gorm.DB
}

// Open opens or creates the database at dbPath, migrates the schema and
// seeds the Default profile. Returns ErrStorageUnavailable if the file
// cannot be opened or the schema cannot be created.
func Open(dbPath string) (*Store, error) {
	// Configure GORM logger
	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      false,
			Colorful:                  true,
		},
	)

	gdb, err := gorm.Open(gormlite.Open(dbPath), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrStorageUnavailable, dbPath, err)
	}

	if err := gdb.AutoMigrate(&Profile{}, &Mod{}, &ModVersion{}, &ModStatus{}); err != nil {
		return nil, fmt.Errorf("%w: migrating schema: %v", ErrStorageUnavailable, err)
	}

	// Seed the Default profile
	result := gdb.Where(&Profile{Name: DefaultProfile}).FirstOrCreate(&Profile{Name: DefaultProfile})
	if result.Error != nil {
		return nil, fmt.Errorf("%w: seeding Default profile: %v", ErrStorageUnavailable, result.Error)
	}

	return &Store{db: gdb}, nil
}

// Session is the shell-owned current-profile pointer. It starts at Default
// and refuses to switch to a profile the store does not know about.
type Session struct {
	store   *Store
	current string
}

// NewSession returns a session pointed at the Default profile.
func NewSession(store *Store) *Session {
	return &Session{store: store, current: DefaultProfile}
}

// Current returns the name of the current profile.
func (s *Session) Current() string {
	return s.current
}

// Switch changes the current profile. Returns ErrUnknownProfile if the
// profile does not exist.
func (s *Session) Switch(name string) error {
	exists, err := s.store.ProfileExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	s.current = name
	return nil
}

// profileByName looks up a profile row, mapping absence to ErrUnknownProfile.
func (s *Store) profileByName(tx *gorm.DB, name string) (Profile, error) {
	var profile Profile
	result := tx.Where("name = ?", name).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return profile, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
		}
		return profile, fmt.Errorf("querying profile %q: %w", name, result.Error)
	}
	return profile, nil
}
