package ext4

import "errors"

// ErrInvalidUTF8 is returned when a name/path field (volume name, last
// mounted path, mount options, error function name) contains a byte
// sequence that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("ext4: field is not valid utf-8")

// SignatureError reports that a superblock's magic did not match 0xEF53.
// It is never returned from Decode itself: CheckSignature is a separate,
// non-fatal check so a best-effort dump can still be produced.
type SignatureError struct {
	Magic uint16
}

func (e *SignatureError) Error() string {
	return "ext4: bad superblock signature"
}
