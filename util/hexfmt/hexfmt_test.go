package hexfmt

import "testing"

func TestWord32(t *testing.T) {
	cases := map[uint32]string{
		0:          "0x00000000",
		0xFF:       "0x000000FF",
		0xDEADBEEF: "0xDEADBEEF",
	}
	for v, want := range cases {
		if got := Word32(v); got != want {
			t.Errorf("Word32(%#x) = %q, want %q", v, got, want)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words([]uint32{0x1, 0xFFFFFFFF})
	want := "00000001 FFFFFFFF"
	if got != want {
		t.Errorf("Words(...) = %q, want %q", got, want)
	}
}

func TestWordsEmpty(t *testing.T) {
	if got := Words(nil); got != "" {
		t.Errorf("Words(nil) = %q, want empty string", got)
	}
}

func TestBytes(t *testing.T) {
	got := Bytes([]byte{0x0A, 0xFF}, true)
	want := "0A FF"
	if got != want {
		t.Errorf("Bytes(..., true) = %q, want %q", got, want)
	}

	got = Bytes([]byte{0x0A, 0xFF}, false)
	want = "0AFF"
	if got != want {
		t.Errorf("Bytes(..., false) = %q, want %q", got, want)
	}
}
