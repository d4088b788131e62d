// Package id generates identifiers for journal rows.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed())), 0)
}

// seed reads a PRNG seed from crypto/rand, falling back to the clock.
func seed() int64 {
	var s int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &s)
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return s
}

// Trade returns a ULID string. ULIDs sort by creation time, so trades listed
// by id come back in the order they happened, even within one millisecond.
func Trade() string {
	return TradeAt(time.Now())
}

// TradeAt returns a ULID stamped with t.
func TradeAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// Only possible if the monotonic entropy overflows within one ms.
		panic(err)
	}
	return id.String()
}

// Session returns a random UUID naming one game session.
func Session() string {
	return uuid.NewString()
}
