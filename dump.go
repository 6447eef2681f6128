package timemarket

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"
)

const restoreBatchSize = 1000

// dumpRecord is one key/value pair of the export stream. The stream is
// gzip-compressed JSON lines, keyspace by keyspace in KeySpaces order.
type dumpRecord struct {
	K []byte `json:"k"`
	V []byte `json:"v"`
}

// Dump streams the entire store to w. The keyspaces are scanned
// concurrently; the output is written in KeySpaces order so restores
// replay the counter and records before the indexes that reference
// them.
func Dump(ctx context.Context, db DB, w io.Writer) error {
	records := make([][]dumpRecord, len(KeySpaces()))

	g, ctx := errgroup.WithContext(ctx)
	for i, ks := range KeySpaces() {
		i, ks := i, ks
		g.Go(func() error {
			collected, err := collectKeySpace(ctx, db, ks)
			if err != nil {
				return err
			}
			records[i] = collected
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	gz := gzip.NewWriter(w)
	enc := json.NewEncoder(gz)
	for _, spaceRecords := range records {
		for i := range spaceRecords {
			if err := enc.Encode(&spaceRecords[i]); err != nil {
				_ = gz.Close()
				return err
			}
		}
	}
	return gz.Close()
}

func collectKeySpace(ctx context.Context, db DB, ks KeySpace) ([]dumpRecord, error) {
	itr := db.Iter(&IterOptions{
		IterOptions: pebble.IterOptions{
			LowerBound: KeySpacePrefix(ks),
			UpperBound: KeySpaceUpperBound(ks),
		},
	})
	defer func() {
		_ = itr.Close()
	}()

	var records []dumpRecord
	for itr.First(); itr.Valid(); itr.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := make([]byte, len(itr.Key()))
		copy(key, itr.Key())
		value := make([]byte, len(itr.Value()))
		copy(value, itr.Value())

		records = append(records, dumpRecord{K: key, V: value})
	}
	if err := itr.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

// Restore replays a Dump stream into db. The target is expected to be
// empty; existing keys are overwritten.
func Restore(ctx context.Context, db DB, r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer func() {
		_ = gz.Close()
	}()

	batch := db.NewBatch()
	defer func() {
		_ = batch.Close()
	}()

	dec := json.NewDecoder(gz)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var record dumpRecord
		err := dec.Decode(&record)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if err := batch.Set(record.K, record.V, Sync); err != nil {
			return err
		}

		if batch.Len() >= restoreBatchSize {
			if err := batch.Commit(Sync); err != nil {
				return err
			}
			batch.Reset()
		}
	}

	return batch.Commit(Sync)
}
