package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(time.Hour)
	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("got %v, %v", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("unexpected hit for missing key")
	}
}

func TestExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("k", "v")

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expired item still returned")
	}
}

func TestKey_StableAndDistinct(t *testing.T) {
	if Key("a", "b") != Key("a", "b") {
		t.Error("same parts should give same key")
	}
	if Key("a", "b") == Key("a", "c") {
		t.Error("different parts should give different keys")
	}
}
