package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/orderedcode"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const (
	journalPrefix  = "journal"
	journalHeadKey = "journal_head"
)

type journal struct {
	store *badgerhold.Store
}

// NewJournal returns a ports.Journal storing entries as raw badger keys
// ordered by sequence number.
func NewJournal(store *badgerhold.Store) ports.Journal {
	return journal{store}
}

func (j journal) Append(ctx context.Context, entry *domain.JournalEntry) error {
	return j.withTx(ctx, true, func(tx *badger.Txn) error {
		head, err := readHead(tx)
		if err != nil {
			return err
		}
		entry.Sequence = head + 1

		value, err := badgerhold.DefaultEncode(entry)
		if err != nil {
			return err
		}
		key, err := orderedcode.Append(nil, journalPrefix, entry.Sequence)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}

		headKey, _ := orderedcode.Append(nil, journalHeadKey)
		headValue, err := orderedcode.Append(nil, entry.Sequence)
		if err != nil {
			return err
		}
		return tx.Set(headKey, headValue)
	})
}

func (j journal) List(
	ctx context.Context, from uint64, limit int,
) ([]domain.JournalEntry, error) {
	entries := make([]domain.JournalEntry, 0)

	err := j.withTx(ctx, false, func(tx *badger.Txn) error {
		prefix, err := orderedcode.Append(nil, journalPrefix)
		if err != nil {
			return err
		}
		start, err := orderedcode.Append(nil, journalPrefix, from)
		if err != nil {
			return err
		}

		it := tx.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var entry domain.JournalEntry
			if err := badgerhold.DefaultDecode(value, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (j journal) Head(ctx context.Context) (uint64, error) {
	var head uint64
	err := j.withTx(ctx, false, func(tx *badger.Txn) error {
		var err error
		head, err = readHead(tx)
		return err
	})
	return head, err
}

func (j journal) withTx(
	ctx context.Context, writable bool, fn func(tx *badger.Txn) error,
) error {
	if tx := txFromContext(ctx); tx != nil {
		return fn(tx)
	}
	if writable {
		return j.store.Badger().Update(fn)
	}
	return j.store.Badger().View(fn)
}

func readHead(tx *badger.Txn) (uint64, error) {
	headKey, _ := orderedcode.Append(nil, journalHeadKey)
	item, err := tx.Get(headKey)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return 0, nil
		}
		return 0, err
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return 0, err
	}

	var head uint64
	if _, err := orderedcode.Parse(string(value), &head); err != nil {
		return 0, err
	}
	return head, nil
}
