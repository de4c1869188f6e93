package rng

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := New(7)
	b := New(7)

	for i := 0; i < 1000; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("Float64 diverged at draw %d", i)
		}
		if a.IntIn(1, 255) != b.IntIn(1, 255) {
			t.Fatalf("IntIn diverged at draw %d", i)
		}
	}
	assert.Equal(t, a.Perm(256), b.Perm(256))
}

func TestDifferentSeedsDiffer(t *testing.T) {
	assert.NotEqual(t, New(1).Perm(256), New(2).Perm(256))
}

func TestFloat64Range(t *testing.T) {
	s := New(42)
	for i := 0; i < 10000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %f, out of [0,1)", v)
		}
	}
}

func TestIntInRange(t *testing.T) {
	s := New(3)
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		v := s.IntIn(1, 9)
		if v < 1 || v >= 9 {
			t.Fatalf("IntIn(1, 9) = %d, out of [1,9)", v)
		}
		seen[v] = true
	}
	assert.Len(t, seen, 8)
}

func TestPermIsPermutation(t *testing.T) {
	p := New(99).Perm(256)
	sorted := append([]int(nil), p...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("Perm(256) missing %d", i)
		}
	}
	identity := true
	for i, v := range p {
		if v != i {
			identity = false
			break
		}
	}
	assert.False(t, identity, "Perm(256) returned the identity")
}
