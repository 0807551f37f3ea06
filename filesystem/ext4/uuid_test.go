package ext4

import "testing"

func TestUUIDIsNull(t *testing.T) {
	null, err := uuidFromBytes(make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}
	if !null.IsNull() {
		t.Error("all-zero uuid should be null")
	}
	if got := null.String(); got != "<none>" {
		t.Errorf("null uuid String() = %q, want <none>", got)
	}
}

func TestUUIDNonNull(t *testing.T) {
	b := []byte{
		0x12, 0x34, 0x56, 0x78,
		0x9a, 0xbc,
		0xde, 0xf0,
		0x11, 0x22,
		0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	}
	u, err := uuidFromBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if u.IsNull() {
		t.Error("non-zero uuid reported as null")
	}
	want := "12345678-9abc-def0-1122-334455667788"
	if got := u.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestUUIDFromBytesWrongLength(t *testing.T) {
	if _, err := uuidFromBytes(make([]byte, 15)); err == nil {
		t.Error("expected error for wrong-length uuid bytes")
	}
}
