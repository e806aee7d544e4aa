package world

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a hex BLAKE2b-256 digest of the board state: terrain,
// clouds, hazards, props and units with their HP and statuses. Two levels
// with the same fingerprint resolve a cast identically.
func (l *Level) Fingerprint() string {
	h, _ := blake2b.New256(nil) // only errors on an oversized key

	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	putString := func(s string) {
		putInt(len(s))
		h.Write([]byte(s))
	}

	putInt(l.Width)
	putInt(l.Height)
	for x := range l.tiles {
		for y := range l.tiles[x] {
			t := &l.tiles[x][y]
			putInt(int(t.Kind))
			putString(t.Prop)
			if t.Cloud != nil {
				putInt(1 + int(t.Cloud.Kind))
				putInt(t.Cloud.Duration)
			} else {
				putInt(0)
			}
			if t.Hazard != nil {
				putString(t.Hazard.Name)
				putInt(t.Hazard.Duration)
			} else {
				putString("")
			}
		}
	}

	putInt(len(l.units))
	for _, u := range l.units {
		putString(u.Name)
		putInt(int(u.Team))
		putInt(u.Pos.X)
		putInt(u.Pos.Y)
		putInt(u.HP)
		for _, s := range u.Statuses() {
			putString(string(s))
			putInt(u.StatusTurns(s))
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
