// Package zobrist maintains the (code, key) fingerprint pair used to key the
// transposition tables onto game states, invariant under move-order
// transpositions.
package zobrist

import (
	"fmt"
	"math/rand"
)

// State is the current fingerprint of a game position: code is the masked
// value used to address a transposition table bucket, key is the full
// 64bit value used to disambiguate collisions within a bucket.
type State struct {
	Code uint64
	Key  uint64
}

// Table holds the per-move-index XOR values used to update a State.
type Table struct {
	codes []uint64 // masked to tableSizeExp bits
	keys  []uint64 // non-zero, distinct within the vector
	mask  uint64
}

// NewTable draws moveNum distinct codes (masked to tableSizeExp bits) and
// moveNum distinct, non-zero keys. Returns a ConfigError if moveNum exceeds
// the number of addressable buckets.
func NewTable(moveNum int, tableSizeExp uint, seed int64) (*Table, error) {
	if moveNum > (1 << tableSizeExp) {
		return nil, fmt.Errorf("zobrist: %d moves exceed 2^%d table entries: %w", moveNum, tableSizeExp, ConfigError{
			Reason: "number of possible moves is greater than the number of table entries",
		})
	}

	mask := uint64(1)<<tableSizeExp - 1
	r := rand.New(rand.NewSource(seed))

	t := &Table{
		codes: make([]uint64, moveNum),
		keys:  make([]uint64, moveNum),
		mask:  mask,
	}

	seenCodes := make(map[uint64]bool, moveNum)
	seenKeys := make(map[uint64]bool, moveNum)
	for i := 0; i < moveNum; i++ {
		c := r.Uint64() & mask
		for seenCodes[c] {
			c = r.Uint64() & mask
		}
		seenCodes[c] = true
		t.codes[i] = c

		k := r.Uint64()
		for k == 0 || seenKeys[k] {
			k = r.Uint64()
		}
		seenKeys[k] = true
		t.keys[i] = k
	}
	return t, nil
}

// Mask returns the table's bucket mask, 2^tableSizeExp - 1.
func (t *Table) Mask() uint64 {
	return t.mask
}

// Code returns the masked code contribution of move m.
func (t *Table) Code(m int) uint64 {
	return t.codes[m]
}

// Key returns the key contribution of move m.
func (t *Table) Key(m int) uint64 {
	return t.keys[m]
}

// Apply XORs move m's contribution into s. XOR is self-inverse, so the same
// call also undoes the move (spec's update/backward are identical operations).
func (t *Table) Apply(s State, m int) State {
	return State{Code: s.Code ^ t.codes[m], Key: s.Key ^ t.keys[m]}
}

// ConfigError indicates an invalid construction argument.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Reason)
}
