package timemarket

import (
	"fmt"
	"strconv"
)

const (
	// TIMEMARKET_DATA_VERSION is the current on-disk format version.
	TIMEMARKET_DATA_VERSION = 1

	// TIMEMARKET_DATA_VERSION_KEY ..
	TIMEMARKET_DATA_VERSION_KEY = "__timemarket_version__"
)

func versionKey() []byte {
	return keySpaceBuilder(MetaKeySpace).AddStringField(TIMEMARKET_DATA_VERSION_KEY).Bytes()
}

func (db *_db) Version() int {
	value, closer, err := db.Get(versionKey())
	if err != nil {
		return 0
	}
	defer func() {
		_ = closer.Close()
	}()

	ver, _ := strconv.ParseInt(string(value), 10, 32)
	return int(ver)
}

func (db *_db) initVersion() error {
	switch ver := db.Version(); ver {
	case 0:
		return db.Set(versionKey(), []byte(strconv.Itoa(TIMEMARKET_DATA_VERSION)), Sync)
	case TIMEMARKET_DATA_VERSION:
		return nil
	default:
		return fmt.Errorf("timemarket: unsupported data version %d, want %d", ver, TIMEMARKET_DATA_VERSION)
	}
}
