package timemarket

import (
	"io"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
)

var batchSequence atomic.Uint64

type Committer interface {
	Commit(opt WriteOptions) error

	OnCommit(func(b Batch) error)
	OnCommitted(func(b Batch))
	OnError(func(b Batch, err error))
}

// Batch stages a group of writes that commit as a single atomic unit.
// Every mutating ledger operation runs inside exactly one batch.
type Batch interface {
	ID() uint64
	Len() int
	Empty() bool
	Reset()

	Get(key []byte) (data []byte, closer io.Closer, err error)
	Set(key []byte, value []byte, opt WriteOptions) error
	Delete(key []byte, opt WriteOptions) error
	Iter(opt *IterOptions) Iterator

	Committer
	Closer
}

type _batch struct {
	*pebble.Batch

	id uint64

	onCommitCallbacks    []func(b Batch) error
	onCommittedCallbacks []func(b Batch)
	onErrorCallbacks     []func(b Batch, err error)
}

func newBatch(db *_db) Batch {
	return &_batch{
		Batch: db.pebble.NewIndexedBatch(),
		id:    batchSequence.Add(1),
	}
}

func (b *_batch) ID() uint64 {
	return b.id
}

func (b *_batch) Len() int {
	return int(b.Batch.Count())
}

func (b *_batch) Reset() {
	b.Batch.Reset()

	b.id = batchSequence.Add(1)

	b.onCommitCallbacks = nil
	b.onCommittedCallbacks = nil
	b.onErrorCallbacks = nil
}

func (b *_batch) Get(key []byte) (data []byte, closer io.Closer, err error) {
	return b.Batch.Get(key)
}

func (b *_batch) Set(key []byte, value []byte, opt WriteOptions) error {
	return b.Batch.Set(key, value, pebbleWriteOptions(opt))
}

func (b *_batch) Delete(key []byte, opt WriteOptions) error {
	return b.Batch.Delete(key, pebbleWriteOptions(opt))
}

func (b *_batch) Iter(opt *IterOptions) Iterator {
	itr, err := b.Batch.NewIter(pebbleIterOptions(opt))
	if err != nil {
		return &errIterator{err: err}
	}
	return itr
}

func (b *_batch) Commit(opt WriteOptions) error {
	if b.Empty() {
		return nil
	}

	err := b.notifyOnCommit()
	if err != nil {
		return err
	}

	err = b.Batch.Commit(pebbleWriteOptions(opt))
	if err != nil {
		b.notifyOnError(err)
		return err
	}

	b.notifyOnCommitted()
	return nil
}

func (b *_batch) Close() error {
	return b.Batch.Close()
}

func (b *_batch) OnCommit(f func(b Batch) error) {
	b.onCommitCallbacks = append(b.onCommitCallbacks, f)
}

func (b *_batch) OnCommitted(f func(b Batch)) {
	b.onCommittedCallbacks = append(b.onCommittedCallbacks, f)
}

func (b *_batch) OnError(f func(b Batch, err error)) {
	b.onErrorCallbacks = append(b.onErrorCallbacks, f)
}

func (b *_batch) notifyOnCommit() error {
	for _, f := range b.onCommitCallbacks {
		err := f(b)
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *_batch) notifyOnCommitted() {
	for _, f := range b.onCommittedCallbacks {
		f(b)
	}
}

func (b *_batch) notifyOnError(err error) {
	for _, f := range b.onErrorCallbacks {
		f(b, err)
	}
}
