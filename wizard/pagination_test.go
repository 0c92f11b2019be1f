package wizard

import "testing"

func TestPageCount(t *testing.T) {
	cases := []struct {
		n, want int
	}{
		{0, 0},
		{1, 1},
		{5, 1},
		{6, 2},
		{21, 5},
		{25, 5},
		{28, 6},
	}
	for _, c := range cases {
		if got := PageCount(c.n); got != c.want {
			t.Errorf("PageCount(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, total, want int
	}{
		{-1, 25, 0},
		{0, 25, 0},
		{4, 25, 4},
		{5, 25, 4},
		{99, 25, 4},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := ClampPage(c.page, c.total); got != c.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", c.page, c.total, got, c.want)
		}
	}
}

func TestPage(t *testing.T) {
	view := PoolView(LaptopNumbers(), nil) // 25 entries, 5 pages

	first := Page(view, 0)
	if len(first) != 5 || first[0].Number != 1 || first[4].Number != 5 {
		t.Fatalf("page 0 = %v", first)
	}

	last := Page(view, 4)
	if len(last) != 5 || last[0].Number != 21 || last[4].Number != 25 {
		t.Fatalf("page 4 = %v", last)
	}

	// Short final page.
	brother := PoolView(mustPrinterNumbers(t, PrinterBrother), nil) // 28 entries
	tail := Page(brother, 5)
	if len(tail) != 3 || tail[0].Number != 26 {
		t.Fatalf("brother page 5 = %v", tail)
	}

	if out := Page(view, 9); out != nil {
		t.Fatalf("out-of-range page = %v, want nil", out)
	}
}

func mustPrinterNumbers(t *testing.T, pt PrinterType) []int {
	t.Helper()
	nums, err := PrinterNumbers(pt)
	if err != nil {
		t.Fatalf("PrinterNumbers(%s): %v", pt, err)
	}
	return nums
}
