package ratelimit

import (
	"testing"
	"time"
)

func TestBurstThenDeny(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow(1) {
			t.Fatalf("request %d inside the burst was denied", i)
		}
	}
	if l.Allow(1) {
		t.Fatal("request beyond the burst was allowed")
	}
}

func TestChatsAreIndependent(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 1)

	if !l.Allow(1) {
		t.Fatal("first chat denied")
	}
	if !l.Allow(2) {
		t.Fatal("second chat throttled by the first chat's bucket")
	}
}
