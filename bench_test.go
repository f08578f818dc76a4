package CreditTree

import (
	"testing"
)

const (
	size = 1 << 15
	iter = 10
)

func benchKeys(n int) []string {
	ks := make([]string, n)
	for i := range ks {
		ks[i] = tKey(rg.Intn(tKeyRange))
	}
	return ks
}

func BenchmarkCBTree_Insert(b *testing.B) {
	ks := benchKeys(size)
	b.ResetTimer()
	var t *CBTree[string, int, float64]
	for i := 0; i < b.N; i++ {
		t = New[string, int, float64]()
		for j, k := range ks {
			t.Insert(k, j, float64(1+j%tCreditHi))
		}
	}
	b.Log(t.averageDepth())
}

func BenchmarkCBTree_Remove(b *testing.B) {
	ks := benchKeys(size)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		t := New[string, int, float64]()
		for j, k := range ks {
			t.Insert(k, j, float64(1+j%tCreditHi))
		}
		b.StartTimer()
		for _, k := range ks {
			t.Remove(k)
		}
	}
}

func BenchmarkCBTree_FindByCredit(b *testing.B) {
	ks := benchKeys(size)
	t := New[string, int, float64]()
	for j, k := range ks {
		t.Insert(k, j, float64(1+j%tCreditHi))
	}
	total := t.TotalCredit()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < iter; j++ {
			t.FindByCredit(total * float64(j) / iter)
		}
	}
}

func BenchmarkCBTree_All(b *testing.B) {
	ks := benchKeys(size)
	b.ResetTimer()
	var t *CBTree[string, int, float64]
	for i := 0; i < b.N; i++ {
		t = New[string, int, float64]()
		for j, k := range ks[:size/2] {
			t.Insert(k, j, float64(1+j%tCreditHi))
		}
		for j, k := range ks[:size/2] {
			if j&1 == 1 {
				t.Remove(k)
			}
		}
		for j, k := range ks[size/2:] {
			t.Insert(k, j, float64(1+j%tCreditHi))
		}
		for j, k := range ks[size/2:] {
			if j&1 == 1 {
				t.UpdateCredit(k, float64(1+j%tCreditHi))
			}
		}
	}
	b.Log(t.averageDepth())
}
