// Package store implements a persistent container catalog on top of
// Pebble: named containers, stored as zstd-compressed wire bytes. It is the
// storage side of shipping compiled graphs across process boundaries.
package store

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/klauspost/compress/zstd"
	"github.com/riffleml/riffle/internal/serialize"
	"go.uber.org/zap"
)

// containerPrefix namespaces catalog keys so that future metadata keyspaces
// can live in the same database.
const containerPrefix = 'c'

// ErrContainerNotFound is returned by Get and Delete when the named
// container does not exist.
var ErrContainerNotFound = errors.New("container not found")

// Options configures a Store.
type Options struct {
	// InMemory keeps the whole database in memory. Used by tests.
	InMemory bool

	// Logger receives structured put/get/delete events. Nil disables
	// logging.
	Logger *zap.Logger
}

// A Store is a Pebble-backed container catalog. It is safe for concurrent
// use.
type Store struct {
	db     *pebble.DB
	logger *zap.Logger

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens the catalog at path, creating it if needed.
func Open(path string, opts Options) (*Store, error) {
	var popts pebble.Options
	if opts.InMemory {
		popts.FS = vfs.NewMem()
	}

	db, err := pebble.Open(path, &popts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open container store at %q", path)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		_ = db.Close()
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		db:     db,
		logger: logger,
		enc:    enc,
		dec:    dec,
	}, nil
}

// Put stores the container under name, overwriting any previous one.
func (s *Store) Put(name string, c *serialize.Container) error {
	if name == "" {
		return errors.New("cannot store a container with an empty name")
	}

	wire, err := serialize.Marshal(c)
	if err != nil {
		return err
	}
	blob := s.enc.EncodeAll(wire, nil)

	if err := s.db.Set(containerKey(name), blob, pebble.Sync); err != nil {
		return errors.Wrapf(err, "failed to store container %q", name)
	}

	s.logger.Debug("stored container",
		zap.String("name", name),
		zap.Int("steps", len(c.Steps)),
		zap.Int("wire_bytes", len(wire)),
		zap.Int("stored_bytes", len(blob)),
	)
	return nil
}

// Get returns the container stored under name.
func (s *Store) Get(name string) (*serialize.Container, error) {
	blob, closer, err := s.db.Get(containerKey(name))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Wrapf(ErrContainerNotFound, "%q", name)
		}
		return nil, errors.Wrapf(err, "failed to read container %q", name)
	}

	wire, err := s.dec.DecodeAll(blob, nil)
	closeErr := closer.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decompress container %q", name)
	}
	if closeErr != nil {
		return nil, closeErr
	}

	return serialize.Unmarshal(wire)
}

// Delete removes the container stored under name.
func (s *Store) Delete(name string) error {
	key := containerKey(name)

	// Pebble deletes are blind; check existence first so callers can tell
	// a no-op from a removal.
	_, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return errors.Wrapf(ErrContainerNotFound, "%q", name)
		}
		return err
	}
	if err := closer.Close(); err != nil {
		return err
	}

	if err := s.db.Delete(key, pebble.Sync); err != nil {
		return errors.Wrapf(err, "failed to delete container %q", name)
	}

	s.logger.Debug("deleted container", zap.String("name", name))
	return nil
}

// List returns the names of all stored containers in lexicographic order.
func (s *Store) List() ([]string, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{containerPrefix},
		UpperBound: []byte{containerPrefix + 1},
	})
	if err != nil {
		return nil, err
	}

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, string(iter.Key()[1:]))
	}
	if err := iter.Error(); err != nil {
		_ = iter.Close()
		return nil, err
	}

	return names, iter.Close()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}

func containerKey(name string) []byte {
	key := make([]byte, 0, len(name)+1)
	key = append(key, containerPrefix)
	return append(key, name...)
}
