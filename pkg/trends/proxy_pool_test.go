package trends

import "testing"

func TestProxyPool_Empty(t *testing.T) {
	pool := NewProxyPool("")
	if pool.Size() != 0 {
		t.Errorf("expected empty pool, got size %d", pool.Size())
	}
	if got := pool.Next(); got != "" {
		t.Errorf("expected empty proxy, got %q", got)
	}
}

func TestProxyPool_Single(t *testing.T) {
	pool := NewProxyPool("http://proxy1:8080")
	for i := 0; i < 3; i++ {
		if got := pool.Next(); got != "http://proxy1:8080" {
			t.Errorf("call %d: expected single proxy, got %q", i, got)
		}
	}
}

func TestProxyPool_RoundRobin(t *testing.T) {
	pool := NewProxyPool("http://p1:8080, http://p2:8080 ,http://p3:8080")
	if pool.Size() != 3 {
		t.Fatalf("expected 3 proxies, got %d", pool.Size())
	}

	want := []string{"http://p1:8080", "http://p2:8080", "http://p3:8080", "http://p1:8080"}
	for i, expected := range want {
		if got := pool.Next(); got != expected {
			t.Errorf("call %d: expected %q, got %q", i, expected, got)
		}
	}
}
