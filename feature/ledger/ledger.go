package ledger

import (
	"errors"
	"fmt"
	"strings"

	"arcade-catalog/core/catalog"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// prefixBatch carries a format version so that an incompatible batch encoding is never read back.
const prefixBatch = "ledger:batch:v2:"

// Ledger stores processed release batches by source fingerprint. It implements
// catalog.BatchCache and is safe for concurrent use.
type Ledger struct {
	db  *badger.DB
	log *zap.Logger
}

var _ catalog.BatchCache = (*Ledger)(nil)

// Open opens or creates the ledger described by cfg.
func Open(cfg Config, log *zap.Logger) (*Ledger, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return &Ledger{db: db, log: log}, nil
}

func batchKey(fingerprint string) []byte {
	return []byte(prefixBatch + fingerprint)
}

// Get returns the batch stored for fingerprint.
func (l *Ledger) Get(fingerprint string) (*catalog.Batch, bool, error) {
	var batch catalog.Batch
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(batchKey(fingerprint))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &batch)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read batch %s: %w", fingerprint, err)
	}
	return &batch, true, nil
}

// Put stores batch under fingerprint, replacing any previous batch.
func (l *Ledger) Put(fingerprint string, batch *catalog.Batch) error {
	val, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch %s: %w", fingerprint, err)
	}
	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(batchKey(fingerprint), val)
	})
	if err != nil {
		return fmt.Errorf("failed to store batch %s: %w", fingerprint, err)
	}
	l.log.Debug("Batch stored", zap.String("fingerprint", fingerprint), zap.Int("bytes", len(val)))
	return nil
}

// Fingerprints lists every stored fingerprint.
func (l *Ledger) Fingerprints() ([]string, error) {
	var out []string
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixBatch)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			out = append(out, strings.TrimPrefix(string(it.Item().Key()), prefixBatch))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return out, nil
}

// Prune deletes every batch whose fingerprint is not in keep and returns how many were deleted.
func (l *Ledger) Prune(keep map[string]struct{}) (int, error) {
	all, err := l.Fingerprints()
	if err != nil {
		return 0, err
	}
	deleted := 0
	err = l.db.Update(func(txn *badger.Txn) error {
		for _, fp := range all {
			if _, ok := keep[fp]; ok {
				continue
			}
			if err := txn.Delete(batchKey(fp)); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune ledger: %w", err)
	}
	if deleted > 0 {
		l.log.Info("Ledger pruned", zap.Int("deleted", deleted))
	}
	return deleted, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
