package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"isoworld/internal/camera"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := NewSurface(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTransformStack(t *testing.T) {
	s := newSurface(t, 800, 400)

	s.Translate(100, 50)
	s.Push()
	s.Rotate(math.Pi / 2)
	s.Translate(10, 0)
	x, y := s.pen.geo.Apply(0, 0)
	if !near(x, 100) || !near(y, 60) {
		t.Errorf("rotated translate = (%v,%v), want (100,60)", x, y)
	}
	s.Pop()

	x, y = s.pen.geo.Apply(1, 1)
	if !near(x, 101) || !near(y, 51) {
		t.Errorf("after Pop = (%v,%v), want (101,51)", x, y)
	}

	// лишний Pop не ломает состояние
	s.Pop()
	s.Pop()
	if x2, y2 := s.pen.geo.Apply(0, 0); !near(x2, 100) || !near(y2, 50) {
		t.Errorf("unbalanced Pop changed transform: (%v,%v)", x2, y2)
	}
}

func TestPenRestoredByPop(t *testing.T) {
	s := newSurface(t, 10, 10)
	s.Push()
	s.NoFill()
	s.SetStroke(color.White, 3)
	s.Pop()
	if s.pen.fill == nil || s.pen.strokeW != 1 {
		t.Errorf("pen = %+v", s.pen)
	}
}

func TestDrawingWithoutTargetIsNoop(t *testing.T) {
	s := newSurface(t, 10, 10)
	// без Begin команды не должны паниковать
	s.Background(color.Black)
	s.Rect(0, 0, 5, 5)
	s.Ellipse(0, 0, 4, 2)
	s.Text("x", 0, 0)
	if w, h := s.Size(); w != 10 || h != 10 {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestEllipsePoints(t *testing.T) {
	pts := ellipsePoints(10, 20, 8, 4, 4)
	want := [][2]float64{{14, 20}, {10, 22}, {6, 20}, {10, 18}}
	for k, p := range pts {
		if !near(p.X, want[k][0]) || !near(p.Y, want[k][1]) {
			t.Errorf("pts[%d] = %+v, want %v", k, p, want[k])
		}
	}
}

func TestRectPoints(t *testing.T) {
	pts := rectPoints(-2, -4, 4, 8)
	if pts[0].X != -2 || pts[0].Y != -4 || pts[2].X != 2 || pts[2].Y != 4 {
		t.Errorf("rect = %+v", pts)
	}
}

func TestVertexColor(t *testing.T) {
	r, g, b, a := vertexColor(color.NRGBA{R: 255, G: 0, B: 51, A: 128})
	if r != 1 || g != 0 || math.Abs(float64(b)-0.2) > 1e-6 || math.Abs(float64(a)-128.0/255) > 1e-6 {
		t.Errorf("color = %v %v %v %v", r, g, b, a)
	}
}

func TestCameraInput(t *testing.T) {
	held := map[ebiten.Key]bool{ebiten.KeyArrowLeft: true, ebiten.KeyArrowUp: true, ebiten.KeyA: true}
	got := cameraInput(func(k ebiten.Key) bool { return held[k] })
	want := camera.Input{Left: true, Up: true}
	if got != want {
		t.Errorf("input = %+v, want %+v", got, want)
	}
}

func TestRepeating(t *testing.T) {
	tests := []struct {
		d    int
		want bool
	}{
		{0, false}, {1, true}, {2, false}, {29, false}, {32, true}, {33, false}, {36, true},
	}
	for _, tt := range tests {
		if got := repeating(tt.d); got != tt.want {
			t.Errorf("repeating(%d) = %v", tt.d, got)
		}
	}
}

func TestKeyField(t *testing.T) {
	f := NewKeyField("xyz")
	if !f.Type([]rune("zy")) || f.String() != "xyzzy" {
		t.Fatalf("key = %q", f.String())
	}
	if f.Type([]rune{'\n', '\t'}) {
		t.Error("control characters must be ignored")
	}
	if !f.Backspace() || f.String() != "xyzz" {
		t.Errorf("after backspace = %q", f.String())
	}

	empty := NewKeyField("")
	if empty.Backspace() {
		t.Error("backspace on empty key reported a change")
	}
	if !empty.Type([]rune("ключ")) || empty.String() != "ключ" {
		t.Errorf("unicode key = %q", empty.String())
	}

	long := NewKeyField("")
	for i := 0; i < MaxKeyLength+10; i++ {
		long.Type([]rune{'a'})
	}
	if len([]rune(long.String())) != MaxKeyLength {
		t.Errorf("length = %d", len(long.String()))
	}
}

func TestClockAt(t *testing.T) {
	if got := clockAt(90, 60); got != 1500 {
		t.Errorf("clock = %v", got)
	}
}
