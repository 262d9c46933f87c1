package bloommap

import (
	"context"
	"fmt"
	"testing"

	"github.com/mirkobrombin/go-bloommap/pkg/hashfamily"
	"github.com/mirkobrombin/go-bloommap/pkg/store"
)

func benchMap(b *testing.B, scheme hashfamily.Scheme) *Map[int] {
	b.Helper()
	m, k, _ := Estimate(100000, 0.01)
	fam, err := hashfamily.Generate(m, k, hashfamily.WithScheme(scheme))
	if err != nil {
		b.Fatal(err)
	}
	info, _ := NewInfo(m, fam)
	bm, _ := New[int](info, store.NewMemory[int]())

	ctx := context.Background()
	for i := range 100000 {
		_ = bm.Set(ctx, fmt.Sprintf("key-%d", i), i)
	}
	return bm
}

func BenchmarkMap_GetHit(b *testing.B) {
	bm := benchMap(b, hashfamily.DoubleHashing)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = bm.Get(ctx, fmt.Sprintf("key-%d", i%100000))
	}
}

func BenchmarkMap_GetMiss(b *testing.B) {
	for _, scheme := range []hashfamily.Scheme{hashfamily.DoubleHashing, hashfamily.Salted} {
		b.Run(scheme.String(), func(b *testing.B) {
			bm := benchMap(b, scheme)
			ctx := context.Background()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _, _ = bm.Get(ctx, fmt.Sprintf("miss-%d", i))
			}
		})
	}
}
