package mask

import (
	"fmt"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/mirkobrombin/go-bloommap/pkg/hashfamily"
)

func TestMask_NewIsEmpty(t *testing.T) {
	mk := New(100)
	if mk.Len() != 100 {
		t.Fatalf("expected length 100, got %d", mk.Len())
	}
	if mk.Count() != 0 {
		t.Errorf("expected no bits set, got %d", mk.Count())
	}
	for i := range uint(100) {
		if mk.Test(i) {
			t.Fatalf("bit %d set on fresh mask", i)
		}
	}
}

func TestMask_SetIsMonotone(t *testing.T) {
	mk := New(16)
	mk.Set(3)
	mk.Set(3)
	mk.Set(15)

	if !mk.Test(3) || !mk.Test(15) {
		t.Error("expected bits 3 and 15 set")
	}
	if mk.Count() != 2 {
		t.Errorf("expected 2 bits set, got %d", mk.Count())
	}
}

func TestMask_FromBoolsRoundTrip(t *testing.T) {
	in := []bool{true, false, false, true, true, false, false, false, true}
	mk := FromBools(in)
	if mk.Len() != uint(len(in)) {
		t.Fatalf("expected length %d, got %d", len(in), mk.Len())
	}

	out := mk.Bools()
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("bit %d: expected %v, got %v", i, in[i], out[i])
		}
	}
}

func TestMask_FromBitSet(t *testing.T) {
	bs := bitset.New(64)
	bs.Set(10)
	mk := FromBitSet(bs)
	if mk.Len() != 64 || !mk.Test(10) {
		t.Errorf("unexpected mask: len=%d bit10=%v", mk.Len(), mk.Test(10))
	}
}

func TestMask_FromNilBitSet(t *testing.T) {
	mk := FromBitSet(nil)
	if mk.Len() != 0 || mk.Count() != 0 || len(mk.Bools()) != 0 {
		t.Errorf("expected empty mask, got len=%d count=%d", mk.Len(), mk.Count())
	}
	if cp := mk.Clone(); cp.Len() != 0 {
		t.Errorf("expected empty clone, got len=%d", cp.Len())
	}
}

func TestMask_CloneIsIndependent(t *testing.T) {
	mk := New(8)
	mk.Set(1)
	cp := mk.Clone()
	cp.Set(2)

	if mk.Test(2) {
		t.Error("clone mutation leaked into original")
	}
	if !cp.Test(1) {
		t.Error("clone lost bit 1")
	}
}

func TestMask_OutOfRangePanics(t *testing.T) {
	mk := New(8)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range Set")
		}
	}()
	mk.Set(8)
}

func TestBuild_CoversEveryKey(t *testing.T) {
	fam, err := hashfamily.Generate(512, 3)
	if err != nil {
		t.Fatal(err)
	}

	keys := make([]string, 50)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}

	mk := Build(fam, keys...)
	if mk.Len() != 512 {
		t.Fatalf("expected length 512, got %d", mk.Len())
	}
	for _, key := range keys {
		for _, p := range fam.Positions(key) {
			if !mk.Test(p) {
				t.Fatalf("bit %d of %q not set", p, key)
			}
		}
	}
}

func TestBuild_ZeroFamily(t *testing.T) {
	mk := Build(hashfamily.Family{}, "a", "b")
	if mk.Len() != 0 || mk.Count() != 0 {
		t.Errorf("expected empty mask, got len=%d count=%d", mk.Len(), mk.Count())
	}
}
