package life

import (
	"errors"
	"slices"
	"testing"
)

func mustGrid(t *testing.T, size int) *Grid {
	t.Helper()
	g, err := New(size)
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}
	return g
}

func aliveSet(g *Grid) map[[2]int]bool {
	set := map[[2]int]bool{}
	for row := 1; row <= g.Size(); row++ {
		for col := 1; col <= g.Size(); col++ {
			if g.Alive(row, col) {
				set[[2]int{row, col}] = true
			}
		}
	}
	return set
}

func TestNewRejectsEmptyGrid(t *testing.T) {
	for _, size := range []int{0, -3} {
		g, err := New(size)
		if !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d) err = %v, want ErrInvalidSize", size, err)
		}
		if g != nil {
			t.Fatalf("New(%d) returned a partial grid", size)
		}
	}
}

func TestIndex(t *testing.T) {
	if got := Index(10, 3, 4); got != 34 {
		t.Fatalf("Index(10, 3, 4) = %d, want 34", got)
	}
	g := mustGrid(t, 4)
	if g.Stride() != 6 || len(g.Cells()) != 36 {
		t.Fatalf("stride=%d cells=%d, want 6 and 36", g.Stride(), len(g.Cells()))
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := mustGrid(t, 5)
	g.Set(2, 3, true)
	g.Set(3, 3, true)
	g.Set(4, 3, true)

	g.Advance()

	expects := map[[2]int]bool{
		{3, 2}: true,
		{3, 3}: true,
		{3, 4}: true,
	}
	if got := aliveSet(g); !mapsEqual(got, expects) {
		t.Fatalf("after first step alive=%v, expected %v", got, expects)
	}

	g.Advance()

	expects = map[[2]int]bool{
		{2, 3}: true,
		{3, 3}: true,
		{4, 3}: true,
	}
	if got := aliveSet(g); !mapsEqual(got, expects) {
		t.Fatalf("after second step alive=%v, expected %v", got, expects)
	}
}

func mapsEqual(a, b map[[2]int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func TestRefreshHaloWrapsEdgesAndCorners(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 99} {
		g, err := NewSeeded(7, seed, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		for gen := 0; gen < 5; gen++ {
			g.RefreshHalo()
			n := g.Size()
			for j := 1; j <= n; j++ {
				if g.Alive(0, j) != g.Alive(n, j) {
					t.Fatalf("seed %d gen %d: top halo col %d mismatch", seed, gen, j)
				}
				if g.Alive(n+1, j) != g.Alive(1, j) {
					t.Fatalf("seed %d gen %d: bottom halo col %d mismatch", seed, gen, j)
				}
				if g.Alive(j, 0) != g.Alive(j, n) {
					t.Fatalf("seed %d gen %d: left halo row %d mismatch", seed, gen, j)
				}
				if g.Alive(j, n+1) != g.Alive(j, 1) {
					t.Fatalf("seed %d gen %d: right halo row %d mismatch", seed, gen, j)
				}
			}
			corners := [][4]int{
				{0, 0, n, n},
				{0, n + 1, n, 1},
				{n + 1, 0, 1, n},
				{n + 1, n + 1, 1, 1},
			}
			for _, c := range corners {
				if g.Alive(c[0], c[1]) != g.Alive(c[2], c[3]) {
					t.Fatalf("seed %d gen %d: corner (%d,%d) does not mirror (%d,%d)", seed, gen, c[0], c[1], c[2], c[3])
				}
			}
			g.Step()
			g.Swap()
		}
	}
}

func TestStepAppliesLifeRule(t *testing.T) {
	// Neighbour offsets around the centre of a 5x5 grid, in a fixed order.
	offsets := [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

	tests := []struct {
		name      string
		alive     bool
		neighbors int
		want      bool
	}{
		{"live with 1 dies", true, 1, false},
		{"live with 2 survives", true, 2, true},
		{"live with 3 survives", true, 3, true},
		{"live with 4 dies", true, 4, false},
		{"dead with 2 stays dead", false, 2, false},
		{"dead with 3 is born", false, 3, true},
		{"dead with 4 stays dead", false, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, 5)
			g.Set(3, 3, tt.alive)
			for _, o := range offsets[:tt.neighbors] {
				g.Set(3+o[0], 3+o[1], true)
			}
			g.RefreshHalo()
			if got := g.CountAliveNeighbors(3, 3); got != tt.neighbors {
				t.Fatalf("CountAliveNeighbors = %d, want %d", got, tt.neighbors)
			}
			g.Step()
			g.Swap()
			if got := g.Alive(3, 3); got != tt.want {
				t.Fatalf("centre alive=%v, want %v", got, tt.want)
			}
		})
	}
}

func TestStepDoesNotMutateCurrent(t *testing.T) {
	g, err := NewSeeded(12, 5, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	g.RefreshHalo()
	before := slices.Clone(g.Cells())
	g.Step()
	if !slices.Equal(before, g.Cells()) {
		t.Fatal("Step wrote into the current generation")
	}
}

func TestSwapExchangesBuffers(t *testing.T) {
	g := mustGrid(t, 3)
	cur := &g.Cells()[0]
	g.Swap()
	if &g.Cells()[0] == cur {
		t.Fatal("Swap did not change the current buffer")
	}
	g.Swap()
	if &g.Cells()[0] != cur {
		t.Fatal("double Swap did not restore the original buffer")
	}
}

func TestGliderTranslatesDiagonally(t *testing.T) {
	g := mustGrid(t, 16)
	g.PlaceGlider(2, 2)
	start := aliveSet(g)

	for range 4 {
		g.Advance()
	}

	want := map[[2]int]bool{}
	for cell := range start {
		want[[2]int{cell[0] + 1, cell[1] + 1}] = true
	}
	if got := aliveSet(g); !mapsEqual(got, want) {
		t.Fatalf("glider after 4 generations = %v, want %v", got, want)
	}
}

func TestGliderWrapsAroundTorus(t *testing.T) {
	g := mustGrid(t, 8)
	g.PlaceGlider(1, 1)
	start := aliveSet(g)

	// A glider crosses an 8-cell torus diagonally in 32 generations.
	for range 32 {
		g.Advance()
	}
	if got := aliveSet(g); !mapsEqual(got, start) {
		t.Fatalf("glider did not return home: got %v, want %v", got, start)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, _ := NewSeeded(20, 77, 0.3)
	b, _ := NewSeeded(20, 77, 0.3)
	c, _ := NewSeeded(20, 78, 0.3)
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("same seed produced different grids")
	}
	if slices.Equal(a.Cells(), c.Cells()) {
		t.Fatal("different seeds produced identical grids")
	}
	if a.Population() == 0 {
		t.Fatal("density 0.3 seeded no cells")
	}
}

func TestSeedDensityExtremes(t *testing.T) {
	g, _ := NewSeeded(9, 1, 0)
	if g.Population() != 0 {
		t.Fatalf("density 0 population = %d", g.Population())
	}
	g.Seed(1, 1)
	if g.Population() != 81 {
		t.Fatalf("density 1 population = %d, want 81", g.Population())
	}
	// Halo stays untouched by seeding.
	if g.Alive(0, 0) || g.Alive(10, 5) {
		t.Fatal("Seed wrote halo cells")
	}
	g.Clear()
	if g.Population() != 0 {
		t.Fatal("Clear left live cells")
	}
}
