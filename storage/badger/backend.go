package badger

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Catalog order positions are handed out in blocks of this size.
const orderSequenceBandwidth = 256

// Backend is an in-memory BadgerDB instance. A catalog is loaded into it once
// per process and nothing is written to disk.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// BackendOption configures OpenBackend.
type BackendOption func(*Backend)

// WithLogger routes BadgerDB's internal log output to logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) BackendOption {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// slogAdapter forwards badger.Logger calls to slog. Badger's info output is
// startup chatter, so it goes to debug.
type slogAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*slogAdapter)(nil)

func (a *slogAdapter) Errorf(format string, args ...any) {
	a.logger.Error(fmt.Sprintf(format, args...))
}

func (a *slogAdapter) Warningf(format string, args ...any) {
	a.logger.Warn(fmt.Sprintf(format, args...))
}

func (a *slogAdapter) Infof(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...))
}

func (a *slogAdapter) Debugf(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenBackend starts an empty in-memory database.
func OpenBackend(opts ...BackendOption) (*Backend, error) {
	b := &Backend{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "badger")

	dbOpts := badger.DefaultOptions("").
		WithInMemory(true).
		WithCompression(options.None).
		WithLogger(&slogAdapter{logger: b.logger})

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory store: %w", err)
	}
	b.db = db
	return b, nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx runs fn inside a transaction that is always discarded afterwards.
// Write transactions must be committed by fn.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// WithRollingWrite runs fn with a setter backed by a write transaction. When
// the transaction outgrows badger's size limit it is committed and a fresh one
// takes over, so writes are only atomic per transaction, not per call.
func (b *Backend) WithRollingWrite(fn func(set func(key, value []byte) error) error) error {
	tx := b.db.NewTransaction(true)
	defer func() { tx.Discard() }()

	commits := 0
	set := func(key, value []byte) error {
		err := tx.Set(key, value)
		if !errors.Is(err, badger.ErrTxnTooBig) {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		commits++
		tx = b.db.NewTransaction(true)
		return tx.Set(key, value)
	}

	if err := fn(set); err != nil {
		return err
	}
	if commits > 0 {
		b.logger.Debug("write spanned several transactions", "transactions", commits+1)
	}
	return tx.Commit()
}

// GetSequence returns the named monotonic sequence.
func (b *Backend) GetSequence(name string) (*badger.Sequence, error) {
	return b.db.GetSequence([]byte(name), orderSequenceBandwidth)
}
