package timemarket

import (
	"io"

	"github.com/cockroachdb/pebble"
)

type Getter interface {
	Get(key []byte, optBatch ...Batch) (data []byte, closer io.Closer, err error)
}

type Setter interface {
	Set(key []byte, value []byte, opt WriteOptions, optBatch ...Batch) error
}

type Deleter interface {
	Delete(key []byte, opt WriteOptions, optBatch ...Batch) error
}

type Iterationer interface {
	Iter(opt *IterOptions, optBatch ...Batch) Iterator
}

type Batcher interface {
	NewBatch() Batch
}

type Closer interface {
	Close() error
}

// DB is the persistent store backing the marketplace ledger. It is a
// thin facade over a pebble instance with a record serializer attached.
type DB interface {
	Getter
	Setter
	Deleter
	Iterationer
	Batcher
	Closer

	Serializer() Serializer[any]
	Version() int
	DiskUsage() uint64
}

type _db struct {
	pebble *pebble.DB

	serializer Serializer[any]
}

// Open opens or creates a ledger store at dirname. The version stamp is
// written on first open and verified on every subsequent one.
func Open(dirname string, opts *Options) (DB, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if opts.Serializer == nil {
		opts.Serializer = DefaultOptions().Serializer
	}

	if opts.PebbleOptions == nil {
		opts.PebbleOptions = DefaultPebbleOptions()
	}

	pdb, err := pebble.Open(dirname, opts.PebbleOptions)
	if err != nil {
		return nil, err
	}

	db := &_db{
		pebble:     pdb,
		serializer: opts.Serializer,
	}

	if err := db.initVersion(); err != nil {
		_ = pdb.Close()
		return nil, err
	}

	return db, nil
}

func (db *_db) Get(key []byte, optBatch ...Batch) ([]byte, io.Closer, error) {
	if len(optBatch) > 0 && optBatch[0] != nil {
		return optBatch[0].Get(key)
	}
	return db.pebble.Get(key)
}

func (db *_db) Set(key []byte, value []byte, opt WriteOptions, optBatch ...Batch) error {
	if len(optBatch) > 0 && optBatch[0] != nil {
		return optBatch[0].Set(key, value, opt)
	}
	return db.pebble.Set(key, value, pebbleWriteOptions(opt))
}

func (db *_db) Delete(key []byte, opt WriteOptions, optBatch ...Batch) error {
	if len(optBatch) > 0 && optBatch[0] != nil {
		return optBatch[0].Delete(key, opt)
	}
	return db.pebble.Delete(key, pebbleWriteOptions(opt))
}

func (db *_db) Iter(opt *IterOptions, optBatch ...Batch) Iterator {
	if len(optBatch) > 0 && optBatch[0] != nil {
		return optBatch[0].Iter(opt)
	}
	itr, err := db.pebble.NewIter(pebbleIterOptions(opt))
	if err != nil {
		return &errIterator{err: err}
	}
	return itr
}

func (db *_db) NewBatch() Batch {
	return newBatch(db)
}

func (db *_db) Serializer() Serializer[any] {
	return db.serializer
}

func (db *_db) DiskUsage() uint64 {
	return db.pebble.Metrics().DiskSpaceUsage()
}

func (db *_db) Close() error {
	return db.pebble.Close()
}

type WriteOptions struct {
	Sync bool
}

var Sync = WriteOptions{Sync: true}
var NoSync = WriteOptions{Sync: false}

func pebbleWriteOptions(opt WriteOptions) *pebble.WriteOptions {
	if opt.Sync {
		return pebble.Sync
	}
	return pebble.NoSync
}
