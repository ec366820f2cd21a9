package tune

import "testing"

func TestLaunchCachesDecision(t *testing.T) {
	t.Parallel()

	c := NewCache()

	a := c.Launch("twisted_mass/interior", 4096)
	b := c.Launch("twisted_mass/interior", 4096)

	if a != b {
		t.Fatalf("repeated Launch differs: %+v vs %+v", a, b)
	}

	if c.Len() != 1 {
		t.Fatalf("cache length = %d, want 1", c.Len())
	}

	// A different shape is a separate decision.
	c.Launch("twisted_mass/interior", 8192)
	c.Launch("twisted_mass/exterior_t", 4096)

	if c.Len() != 3 {
		t.Fatalf("cache length = %d, want 3", c.Len())
	}
}

func TestRecordOverrides(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.Record("twisted_mass/interior", 1024, Config{Workers: 3})

	if got := c.Launch("twisted_mass/interior", 1024); got.Workers != 3 {
		t.Fatalf("Workers = %d, want recorded 3", got.Workers)
	}
}

func TestSmallVolumesStaySequential(t *testing.T) {
	t.Parallel()

	c := NewCache()

	if got := c.Launch("twisted_mass/interior", 16); got.Workers != 1 {
		t.Fatalf("Workers = %d for tiny volume, want 1", got.Workers)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.Launch("k", 100)
	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("cache not cleared")
	}
}
