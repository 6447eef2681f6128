package timemarket

import "github.com/cockroachdb/pebble"

type IterOptions struct {
	pebble.IterOptions
}

type Iterator interface {
	First() bool
	Last() bool
	Prev() bool
	Next() bool
	Valid() bool
	Error() error

	SeekGE(key []byte) bool
	SeekPrefixGE(key []byte) bool
	SeekLT(key []byte) bool

	Key() []byte
	Value() []byte

	Close() error
}

func pebbleIterOptions(opt *IterOptions) *pebble.IterOptions {
	if opt == nil {
		return &pebble.IterOptions{}
	}
	return &opt.IterOptions
}

// errIterator is returned when the backend refuses to create an
// iterator; it is immediately invalid and carries the cause.
type errIterator struct {
	err error
}

func (e *errIterator) First() bool                { return false }
func (e *errIterator) Last() bool                 { return false }
func (e *errIterator) Prev() bool                 { return false }
func (e *errIterator) Next() bool                 { return false }
func (e *errIterator) Valid() bool                { return false }
func (e *errIterator) Error() error               { return e.err }
func (e *errIterator) SeekGE(_ []byte) bool       { return false }
func (e *errIterator) SeekPrefixGE(_ []byte) bool { return false }
func (e *errIterator) SeekLT(_ []byte) bool       { return false }
func (e *errIterator) Key() []byte                { return nil }
func (e *errIterator) Value() []byte              { return nil }
func (e *errIterator) Close() error               { return nil }
