package badger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend(t *testing.T) {
	backend, err := OpenBackend()
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	backend, err := OpenBackend(WithLogger(logger), WithLogger(nil))
	require.NoError(t, err)
	defer backend.Close()

	adapter := &slogAdapter{logger: backend.logger}
	adapter.Warningf("value log %d replayed", 3)

	assert.Contains(t, buf.String(), "component=badger")
	assert.Contains(t, buf.String(), "value log 3 replayed")
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend()
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestBackendWithTx(t *testing.T) {
	backend, err := OpenBackend()
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte("k"), []byte("v")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	var got []byte
	err = backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte("k"))
		if err != nil {
			return err
		}
		got, err = item.ValueCopy(nil)
		return err
	}, false)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestBackendWithRollingWrite(t *testing.T) {
	backend, err := OpenBackend()
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithRollingWrite(func(set func(key, value []byte) error) error {
		return set([]byte("kept"), []byte("v"))
	})
	require.NoError(t, err)

	failure := errors.New("stop")
	err = backend.WithRollingWrite(func(set func(key, value []byte) error) error {
		if err := set([]byte("dropped"), []byte("v")); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	err = backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get([]byte("kept")); err != nil {
			return err
		}
		_, err := tx.Get([]byte("dropped"))
		assert.ErrorIs(t, err, badger.ErrKeyNotFound)
		return nil
	}, false)
	require.NoError(t, err)
}

func TestMakeCourseOrderKey_SortsNumerically(t *testing.T) {
	k2 := makeCourseOrderKey(2)
	k10 := makeCourseOrderKey(10)
	k256 := makeCourseOrderKey(256)

	assert.Less(t, string(k2), string(k10))
	assert.Less(t, string(k10), string(k256))
	assert.Equal(t, courseOrderPrefixBytes(), k2[:len(courseOrderPrefixBytes())])
}
