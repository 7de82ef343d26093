package redis

import "testing"

func TestClientOptionsDefaults(t *testing.T) {
	opts := clientOptions(Config{})

	if opts.ClientName != "tracking-system" {
		t.Fatalf("unexpected client name %q", opts.ClientName)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.PoolSize != 8 {
		t.Fatalf("unexpected pool size %d", opts.PoolSize)
	}
	if opts.MinIdleConns != 4 {
		t.Fatalf("unexpected min idle conns %d", opts.MinIdleConns)
	}
}

func TestClientOptionsConfigured(t *testing.T) {
	opts := clientOptions(Config{Addr: "cache:6380", DB: 2, PoolSize: 20})

	if opts.Addr != "cache:6380" || opts.DB != 2 {
		t.Fatalf("config not applied: %+v", opts)
	}
	if opts.PoolSize != 20 || opts.MinIdleConns != 10 {
		t.Fatalf("pool sizing not applied: %+v", opts)
	}
}
