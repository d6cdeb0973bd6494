package ristretto_test

import (
	"context"
	"testing"
	"time"

	"github.com/Strob0t/PartnerConsole/internal/adapter/ristretto"
)

func newCache(t *testing.T) *ristretto.Cache {
	t.Helper()
	c, err := ristretto.NewMB(1)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestCache(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		if err := c.Set(ctx, "session:a", []byte(`{"id":"a"}`), time.Minute); err != nil {
			t.Fatal(err)
		}
		val, found, err := c.Get(ctx, "session:a")
		if err != nil {
			t.Fatal(err)
		}
		if !found {
			t.Fatal("expected found right after Set")
		}
		if string(val) != `{"id":"a"}` {
			t.Fatalf("unexpected value %s", val)
		}
	})

	t.Run("GetMiss", func(t *testing.T) {
		_, found, err := c.Get(ctx, "session:missing")
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Fatal("expected miss")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		_ = c.Set(ctx, "draft:a", []byte("x"), time.Minute)
		if err := c.Delete(ctx, "draft:a"); err != nil {
			t.Fatal(err)
		}
		if _, found, _ := c.Get(ctx, "draft:a"); found {
			t.Fatal("expected miss after Delete")
		}
		if err := c.Delete(ctx, "never-existed"); err != nil {
			t.Fatal("Delete of a missing key should not error")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		_ = c.Set(ctx, "session:b", []byte("v1"), time.Minute)
		_ = c.Set(ctx, "session:b", []byte("v2"), time.Minute)
		val, found, _ := c.Get(ctx, "session:b")
		if !found || string(val) != "v2" {
			t.Fatalf("expected v2 after overwrite, got %q (found=%v)", val, found)
		}
	})

	t.Run("Expiry", func(t *testing.T) {
		_ = c.Set(ctx, "session:ttl", []byte("x"), 50*time.Millisecond)
		time.Sleep(150 * time.Millisecond)
		if _, found, _ := c.Get(ctx, "session:ttl"); found {
			t.Fatal("expected entry to expire")
		}
	})
}

func TestNewRejectsZeroSize(t *testing.T) {
	if _, err := ristretto.New(0); err == nil {
		t.Fatal("expected error for zero size")
	}
}
