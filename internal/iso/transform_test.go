package iso

import "testing"

func TestRoundTrip(t *testing.T) {
	tr := New(32, 16)
	cameras := [][2]float64{
		{0, 0},
		{-400, 200},
		{13.7, -5.3},
		{-1234.56, 987.65},
	}

	for _, cam := range cameras {
		for i := -1000; i <= 1000; i += 1 {
			for j := -1000; j <= 1000; j += 37 {
				sx, sy := tr.WorldToScreen(float64(i), float64(j), cam[0], cam[1])
				gi, gj := tr.ScreenToWorld(sx, sy, cam[0], cam[1])
				if gi != i || gj != j {
					t.Fatalf("cam %v: (%d,%d) -> (%v,%v) -> (%d,%d)", cam, i, j, sx, sy, gi, gj)
				}
			}
		}
	}
}

func TestPixelRoundTrip(t *testing.T) {
	tr := New(40, 20)
	cx, cy := -317.25, 211.5
	for i := -200; i <= 200; i += 3 {
		for j := -200; j <= 200; j += 5 {
			px, py := tr.WorldToPixel(float64(i), float64(j), cx, cy)
			if gi, gj := tr.PixelToWorld(px, py, cx, cy); gi != i || gj != j {
				t.Fatalf("(%d,%d) -> (%d,%d)", i, j, gi, gj)
			}
		}
	}
}

// Любая точка строго внутри ромба тайла инвертируется в этот тайл.
func TestScreenToWorld_FootprintInterior(t *testing.T) {
	tr := New(32, 16)
	for _, tile := range [][2]int{{0, 0}, {3, -7}, {-12, 4}} {
		cx, cy := tr.WorldToScreen(float64(tile[0]), float64(tile[1]), 0, 0)
		for dx := -31.0; dx <= 31; dx += 2 {
			for dy := -15.0; dy <= 15; dy += 1 {
				if abs(dx)/32+abs(dy)/16 >= 0.99 {
					continue
				}
				i, j := tr.ScreenToWorld(cx+dx, cy+dy, 0, 0)
				if i != tile[0] || j != tile[1] {
					t.Fatalf("point (%v,%v) of tile %v inverted to (%d,%d)", dx, dy, tile, i, j)
				}
			}
		}
	}
}

func TestClickInversion_Golden(t *testing.T) {
	tr := New(32, 16)

	tests := []struct {
		name         string
		x, y         float64
		pixel        bool
		wantI, wantJ int
	}{
		{name: "screen origin", x: 0, y: 0, wantI: 0, wantJ: 0},
		{name: "screen (32,16) is east neighbour", x: 32, y: 16, wantI: 1, wantJ: 0},
		{name: "pixel origin", x: 0, y: 0, pixel: true, wantI: 0, wantJ: 0},
		// холст зеркален по X: тот же пиксель дает соседа по j
		{name: "pixel (32,16) is south neighbour", x: 32, y: 16, pixel: true, wantI: 0, wantJ: 1},
		{name: "just above the diamond top", x: 0, y: -16.5, wantI: -1, wantJ: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i, j int
			if tt.pixel {
				i, j = tr.PixelToWorld(tt.x, tt.y, 0, 0)
			} else {
				i, j = tr.ScreenToWorld(tt.x, tt.y, 0, 0)
			}
			if i != tt.wantI || j != tt.wantJ {
				t.Errorf("got (%d,%d), want (%d,%d)", i, j, tt.wantI, tt.wantJ)
			}
		})
	}
}

func TestCameraToWorldOffset(t *testing.T) {
	tr := New(32, 16)
	tests := []struct {
		cx, cy     float64
		wantI, wantJ int
	}{
		{0, 0, 0, 0},
		{-400, 200, -6, 6},
		{31, 15, 0, 0},
		{33, 17, 1, 1},
		{-96, -96, -2, -3},
	}
	for _, tt := range tests {
		i, j := tr.CameraToWorldOffset(tt.cx, tt.cy)
		if i != tt.wantI || j != tt.wantJ {
			t.Errorf("CameraToWorldOffset(%v,%v) = (%d,%d), want (%d,%d)", tt.cx, tt.cy, i, j, tt.wantI, tt.wantJ)
		}
	}
}

func TestRenderingOrder(t *testing.T) {
	i, j := RenderingOrder(2, 5)
	if i != 3 || j != 7 {
		t.Errorf("RenderingOrder(2,5) = (%v,%v), want (3,7)", i, j)
	}
	i, j = RenderingOrder(0.5, 0.5)
	if i != 0 || j != 1 {
		t.Errorf("RenderingOrder(0.5,0.5) = (%v,%v), want (0,1)", i, j)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
