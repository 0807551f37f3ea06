package ext4

import "testing"

func TestFeatureCompatContainsAndList(t *testing.T) {
	// HAS_JOURNAL | DIR_INDEX
	fc := newFeatureCompat(0x24)
	if !fc.HasJournal() {
		t.Error("expected has_journal set")
	}
	if !fc.DirIndex() {
		t.Error("expected dir_index set")
	}
	if fc.UnknownBits() {
		t.Error("expected no unknown bits")
	}
	got := fc.FlagsList()
	want := []string{"has_journal", "dir_index"}
	if len(got) != len(want) {
		t.Fatalf("FlagsList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FlagsList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFeaturesListAssembly(t *testing.T) {
	// compat=0x24 (has_journal, dir_index), incompat=0x42 (filetype, extent),
	// ro_compat=0x1 (sparse_super)
	f := Features{
		Compat:   newFeatureCompat(0x24),
		Incompat: newFeatureIncompat(0x42),
		RoCompat: newFeatureRoCompat(0x1),
	}
	got := f.List()
	want := []string{"has_journal", "dir_index", "filetype", "extent", "sparse_super"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFeatureUnknownBits(t *testing.T) {
	// bit 0x40000000 is outside every declared incompat flag.
	fi := newFeatureIncompat(0x40000000)
	if !fi.UnknownBits() {
		t.Error("expected unknown bits to be detected")
	}
}

func TestFeatureIncompat64Bit(t *testing.T) {
	fi := newFeatureIncompat(0x80)
	if !fi.Is64Bit() {
		t.Error("expected Is64Bit() true for incompat=0x80")
	}
}

func TestStateUnknownBit(t *testing.T) {
	s := State(0x9) // CLEANLY_UNMOUNTED | 0x8
	if !s.Contains(StateCleanlyUnmounted) {
		t.Error("expected cleanly_unmounted bit set")
	}
	if !s.UnknownBits() {
		t.Error("expected unknown bits true for state=0x9")
	}
}
