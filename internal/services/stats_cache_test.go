package services

import (
	"errors"
	"testing"
	"time"
)

func TestStatsCacheGetOrLoad(t *testing.T) {
	c := NewStatsCache(4, time.Hour)
	loads := 0
	load := func() (int64, error) {
		loads++
		return 7, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad("total", load)
		if err != nil || v != 7 {
			t.Fatalf("GetOrLoad = %d, %v", v, err)
		}
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}

	c.Purge()
	if _, err := c.GetOrLoad("total", load); err != nil {
		t.Fatal(err)
	}
	if loads != 2 {
		t.Errorf("loads after purge = %d, want 2", loads)
	}
}

func TestStatsCacheDoesNotCacheErrors(t *testing.T) {
	c := NewStatsCache(4, time.Hour)
	fail := true
	load := func() (int64, error) {
		if fail {
			return 0, errors.New("database is locked")
		}
		return 1, nil
	}

	if _, err := c.GetOrLoad("k", load); err == nil {
		t.Fatal("expected error")
	}
	fail = false
	if v, err := c.GetOrLoad("k", load); err != nil || v != 1 {
		t.Errorf("GetOrLoad = %d, %v", v, err)
	}
}

func TestNilStatsCacheLoadsEveryTime(t *testing.T) {
	var c *StatsCache
	loads := 0
	for i := 0; i < 2; i++ {
		if _, err := c.GetOrLoad("k", func() (int64, error) { loads++; return 0, nil }); err != nil {
			t.Fatal(err)
		}
	}
	c.Purge()
	if loads != 2 {
		t.Errorf("loads = %d, want 2", loads)
	}
}
