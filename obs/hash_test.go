package obs

import "testing"

func TestFrameHasherDeterministicForSameInput(t *testing.T) {
	h1 := NewFrameHasher()
	h1.WriteRune('x').WriteUint8(1).WriteFloat32(0.5)
	h2 := NewFrameHasher()
	h2.WriteRune('x').WriteUint8(1).WriteFloat32(0.5)
	if h1.Sum64() != h2.Sum64() {
		t.Fatal("identical input sequences should hash identically")
	}
}

func TestFrameHasherDiffersOnFloatBitPattern(t *testing.T) {
	h1 := NewFrameHasher()
	h1.WriteFloat32(1.0)
	h2 := NewFrameHasher()
	h2.WriteFloat32(1.0000001)
	if h1.Sum64() == h2.Sum64() {
		t.Fatal("distinct float bit patterns should not collide trivially")
	}
}

func TestFrameHasherSensitiveToFieldOrder(t *testing.T) {
	h1 := NewFrameHasher()
	h1.WriteRune('a').WriteRune('b')
	h2 := NewFrameHasher()
	h2.WriteRune('b').WriteRune('a')
	if h1.Sum64() == h2.Sum64() {
		t.Fatal("order-sensitive writes should not collide")
	}
}

func TestHashBytesStable(t *testing.T) {
	a := HashBytes([]byte("hello"))
	b := HashBytes([]byte("hello"))
	if a != b {
		t.Fatal("HashBytes should be stable for identical input")
	}
}
