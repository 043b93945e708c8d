package scheduler

import (
	"testing"

	"isoworld/internal/iso"
)

func TestWindow(t *testing.T) {
	s := New(DefaultOverdraw)
	w := s.Window(Viewport{Width: 800, Height: 400}, iso.New(32, 16))

	want := Window{Cols: 13, Rows: 13, X0: -2, X1: 15, Y0: -2, Y1: 15}
	if w != want {
		t.Errorf("Window() = %+v, want %+v", w, want)
	}
}

func TestWindow_ZeroOverdraw(t *testing.T) {
	s := New(0)
	w := s.Window(Viewport{Width: 640, Height: 480}, iso.New(40, 20))
	want := Window{Cols: 8, Rows: 12, X0: 0, X1: 8, Y0: 0, Y1: 12}
	if w != want {
		t.Errorf("Window() = %+v, want %+v", w, want)
	}
}

func TestSweep_CountAndUniqueness(t *testing.T) {
	s := New(DefaultOverdraw)
	tr := iso.New(32, 16)
	tiles := s.Sweep(nil, Viewport{Width: 800, Height: 400}, tr, 3, -7)

	if len(tiles) != 17*17*2 {
		t.Fatalf("len = %d, want %d", len(tiles), 17*17*2)
	}

	seen := make(map[[2]int]bool, len(tiles))
	for _, tile := range tiles {
		k := [2]int{tile.I, tile.J}
		if seen[k] {
			t.Fatalf("tile %v scheduled twice", k)
		}
		seen[k] = true
	}
}

func TestSweep_BackToFrontOrder(t *testing.T) {
	s := New(DefaultOverdraw)
	tiles := s.Sweep(nil, Viewport{Width: 1000, Height: 700}, iso.New(40, 20), -11, 4)

	prev := tiles[0].I + tiles[0].J
	for n, tile := range tiles {
		depth := tile.I + tile.J
		if depth < prev {
			t.Fatalf("tile #%d (%d,%d) has depth %d after %d", n, tile.I, tile.J, depth, prev)
		}
		prev = depth

		// решетка A - четная глубина относительно смещения, B - нечетная
		parity := depth & 1
		if int(tile.Sweep) != parity {
			t.Fatalf("tile (%d,%d) from sweep %d has depth parity %d", tile.I, tile.J, tile.Sweep, parity)
		}
	}
}

// uncovered считает пиксели (шаг 3) внутри рамки inset, чей тайл не попал в обход.
func uncovered(s *Scheduler, view Viewport, tr iso.Transform, cx, cy, insetX, insetY float64) (int, [2]float64) {
	offI, offJ := tr.CameraToWorldOffset(cx, cy)
	tiles := s.Sweep(nil, view, tr, offI, offJ)
	set := make(map[[2]int]bool, len(tiles))
	for _, tile := range tiles {
		set[[2]int{tile.I, tile.J}] = true
	}

	missed := 0
	var first [2]float64
	for px := insetX; px < float64(view.Width)-insetX; px += 3 {
		for py := insetY; py < float64(view.Height)-insetY; py += 3 {
			i, j := tr.PixelToWorld(px+0.25, py+0.25, cx, cy)
			if !set[[2]int{i, j}] {
				if missed == 0 {
					first = [2]float64{px, py}
				}
				missed++
			}
		}
	}
	return missed, first
}

func pixelCoverage(t *testing.T, s *Scheduler, view Viewport, tr iso.Transform, cx, cy, insetX, insetY float64) {
	t.Helper()
	if n, first := uncovered(s, view, tr, cx, cy, insetX, insetY); n > 0 {
		t.Fatalf("camera (%v,%v): %d pixels in unscheduled tiles, first at %v", cx, cy, n, first)
	}
}

var cameras = [][2]float64{
	{-400, 200},
	{0, 0},
	{123.4, -987.6},
	{-4321.9, 2718.2},
	{31.9, 15.9},
	{-32.1, -16.1},
}

// Без запаса обе решетки покрывают внутренность холста (отступ в один тайл
// от каждого края) без дыр при любой камере. Краевые полосы здесь не проверяются:
// смещение камеры округляется до целого тайла, и у невыровненной камеры они
// остаются пустыми (см. TestSweep_EdgesAtZeroOverdraw).
func TestSweep_InteriorGapFreeAtZeroOverdraw(t *testing.T) {
	s := New(0)
	tr := iso.New(32, 16)
	view := Viewport{Width: 800, Height: 400}
	for _, cam := range cameras {
		pixelCoverage(t, s, view, tr, cam[0], cam[1], 2*tr.TW, 2*tr.TH)
	}
}

// Без запаса края покрыты только у камеры, выровненной по целому тайлу.
func TestSweep_EdgesAtZeroOverdraw(t *testing.T) {
	s := New(0)
	tr := iso.New(32, 16)
	view := Viewport{Width: 800, Height: 400}

	pixelCoverage(t, s, view, tr, 0, 0, 0, 0)

	if n, _ := uncovered(s, view, tr, -400, 200, 0, 0); n == 0 {
		t.Error("start camera: expected empty edge strips without overdraw")
	}
	if n, _ := uncovered(New(DefaultOverdraw), view, tr, -400, 200, 0, 0); n != 0 {
		t.Errorf("start camera with default overdraw: %d uncovered pixels", n)
	}
}

// С запасом по умолчанию покрыт весь холст, включая края.
func TestSweep_FullCoverageWithOverdraw(t *testing.T) {
	s := New(DefaultOverdraw)
	views := []Viewport{{800, 400}, {640, 480}, {333, 211}, {64, 32}}
	for _, tr := range []iso.Transform{iso.New(32, 16), iso.New(40, 20)} {
		for _, view := range views {
			for _, cam := range cameras {
				pixelCoverage(t, s, view, tr, cam[0], cam[1], 0, 0)
			}
		}
	}
}

// Смена размера холста между кадрами учитывается сразу.
func TestSweep_ResizeRecomputes(t *testing.T) {
	s := New(DefaultOverdraw)
	tr := iso.New(32, 16)

	buf := s.Sweep(nil, Viewport{Width: 800, Height: 400}, tr, 0, 0)
	small := len(buf)
	buf = s.Sweep(buf, Viewport{Width: 1600, Height: 800}, tr, 0, 0)
	if len(buf) <= small {
		t.Fatalf("larger viewport produced %d tiles, smaller had %d", len(buf), small)
	}

	pixelCoverage(t, s, Viewport{Width: 1600, Height: 800}, tr, -800, 400, 0, 0)
}

func TestSweep_EmptyViewport(t *testing.T) {
	s := New(DefaultOverdraw)
	if got := s.Sweep(nil, Viewport{}, iso.New(32, 16), 0, 0); len(got) != 0 {
		t.Errorf("empty viewport scheduled %d tiles", len(got))
	}
}
