// Package oid provides the opaque 24-hex-character identifiers used for every
// stored entity. IDs sort lexicographically in creation order because the
// leading 4 bytes are a big-endian unix timestamp.
package oid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

const encodedLen = 24

var ErrInvalidID = errors.New("invalid id")

// ID is the hex form of a 12-byte identifier: 4 bytes of unix seconds,
// 5 bytes of per-process entropy, 3 bytes of counter.
type ID string

var (
	processEntropy [5]byte
	counter        atomic.Uint32
)

func init() {
	if _, err := rand.Read(processEntropy[:]); err != nil {
		panic(fmt.Sprintf("oid: entropy unavailable: %v", err))
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("oid: entropy unavailable: %v", err))
	}
	counter.Store(binary.BigEndian.Uint32(seed[:]))
}

func New() ID {
	return NewAt(time.Now())
}

func NewAt(t time.Time) ID {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[0:4], uint32(t.Unix()))
	copy(raw[4:9], processEntropy[:])

	n := counter.Add(1)
	raw[9] = byte(n >> 16)
	raw[10] = byte(n >> 8)
	raw[11] = byte(n)

	return ID(hex.EncodeToString(raw[:]))
}

func Parse(s string) (ID, error) {
	if len(s) != encodedLen {
		return "", ErrInvalidID
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", ErrInvalidID
	}
	return ID(s), nil
}

func ParseSlice(ss []string) ([]ID, error) {
	out := make([]ID, 0, len(ss))
	for _, s := range ss {
		id, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

// Timestamp returns the creation second encoded in the ID.
func (id ID) Timestamp() time.Time {
	raw, err := hex.DecodeString(string(id))
	if err != nil || len(raw) != 12 {
		return time.Time{}
	}
	return time.Unix(int64(binary.BigEndian.Uint32(raw[0:4])), 0).UTC()
}

// Strings converts a slice of IDs to plain strings, for array-typed SQL params.
func Strings(ids []ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
