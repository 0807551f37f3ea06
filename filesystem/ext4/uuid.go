package ext4

import (
	"fmt"

	"github.com/google/uuid"
)

// UUID is the 16-byte identifier format used for the volume UUID and the
// journal UUID. On disk it is stored as (time-low, time-mid,
// time-hi-and-version, clock-seq, node), each multi-byte field big-endian at
// rest in RFC 4122's own wire format, which is why it is decoded with
// uuid.FromBytes rather than through the little-endian cursor helpers used
// for every other superblock field.
type UUID struct {
	raw uuid.UUID
}

// uuidFromBytes interprets a 16-byte slice as an on-disk UUID.
func uuidFromBytes(b []byte) (UUID, error) {
	if len(b) != 16 {
		return UUID{}, fmt.Errorf("ext4: uuid requires 16 bytes, got %d", len(b))
	}
	u, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("ext4: invalid uuid bytes: %w", err)
	}
	return UUID{raw: u}, nil
}

// IsNull reports whether all 16 bytes are zero.
func (u UUID) IsNull() bool {
	return u.raw == uuid.Nil
}

// String renders the UUID as XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX, or the
// literal "<none>" when the UUID is null.
func (u UUID) String() string {
	if u.IsNull() {
		return "<none>"
	}
	return u.raw.String()
}

// Bytes returns the raw 16-byte on-disk representation.
func (u UUID) Bytes() [16]byte {
	return u.raw
}
