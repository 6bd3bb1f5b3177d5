package scene

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rook-computer/softfb/internal/damage"
	"github.com/rook-computer/softfb/internal/raster"
	"github.com/rook-computer/softfb/internal/state"
)

var testOptions = Options{
	Background: raster.RGB(0x10, 0x18, 0x20),
	Foreground: raster.RGB(0xF2, 0xAA, 0x4C),
	QRPayload:  "softfb",
}

func startScene(t *testing.T, name string, opts Options) Scene {
	t.Helper()
	sc, err := ByName(name, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Start(context.Background()); err != nil {
		t.Fatalf("%s: Start: %v", name, err)
	}
	t.Cleanup(func() { _ = sc.Stop() })
	return sc
}

func input(frame uint64, w, h int) state.Input {
	return state.Input{
		Frame:   frame,
		Elapsed: time.Duration(frame) * time.Second / 30,
		Width:   w,
		Height:  h,
		Mouse:   state.Mouse{X: w / 2, Y: h / 2, Buttons: state.ButtonLeft},
	}
}

func TestScenesDrawAtAnySize(t *testing.T) {
	for _, name := range Names() {
		for _, size := range [][2]int{{320, 200}, {17, 9}, {1, 1}, {0, 0}} {
			c, err := raster.NewCanvas(size[0], size[1], damage.Config{Enabled: true})
			if err != nil {
				t.Fatal(err)
			}
			sc := startScene(t, name, testOptions)
			for frame := uint64(1); frame <= 40; frame++ {
				sc.Draw(c, input(frame, size[0], size[1]))
				c.Damage().Reset()
			}
		}
	}
}

func TestShowcaseUsesTheWholeScreen(t *testing.T) {
	c, _ := raster.NewCanvas(320, 200, damage.Config{Enabled: true})
	startScene(t, "showcase", testOptions).Draw(c, input(1, 320, 200))
	if c.Damage().State() != damage.Full {
		t.Errorf("damage state %v, want full", c.Damage().State())
	}
	colors := map[uint32]bool{}
	for _, p := range c.Framebuffer().Pixels() {
		colors[p] = true
	}
	if len(colors) < 8 {
		t.Errorf("only %d distinct colors drawn", len(colors))
	}
}

func TestDamageSceneRedrawsPartially(t *testing.T) {
	c, _ := raster.NewCanvas(320, 200, damage.Config{Enabled: true})
	sc := startScene(t, "damage", testOptions)

	sc.Draw(c, input(1, 320, 200))
	if c.Damage().State() != damage.Full {
		t.Fatalf("first frame state %v, want full", c.Damage().State())
	}
	c.Damage().Reset()

	sc.Draw(c, input(2, 320, 200))
	if c.Damage().State() != damage.Partial {
		t.Fatalf("second frame state %v, want partial", c.Damage().State())
	}
	r, _ := c.Damage().Query()
	if r == c.Bounds() {
		t.Error("second frame damaged the whole screen")
	}
	c.Damage().Reset()

	in := input(3, 320, 200)
	in.Keys = []rune{'c'}
	sc.Draw(c, in)
	if c.Damage().State() != damage.Full {
		t.Errorf("'c' did not restart the scene")
	}
	c.Damage().Reset()

	if _, err := c.Resize(100, 100); err != nil {
		t.Fatal(err)
	}
	sc.Draw(c, input(4, 100, 100))
	if c.Damage().State() != damage.Full {
		t.Errorf("resize did not restart the scene")
	}
}

func TestSpritesFadeThroughOpacities(t *testing.T) {
	c, _ := raster.NewCanvas(400, 300, damage.Config{Enabled: true})
	sc := startScene(t, "sprites", testOptions)
	if n := len(sc.(*Sprites).sprites); n != 3 {
		t.Fatalf("%d sprites, want label, qr code and checker", n)
	}
	bg := testOptions.Background.Packed()
	for frame := uint64(0); frame < 60; frame += 7 {
		sc.Draw(c, input(frame, 400, 300))
		drawn := 0
		for _, p := range c.Framebuffer().Pixels() {
			if p != bg {
				drawn++
			}
		}
		if drawn == 0 {
			t.Fatalf("frame %d drew nothing", frame)
		}
	}
}

func TestSpritesSkipMissingImage(t *testing.T) {
	opts := testOptions
	opts.QRPayload = ""
	opts.ImagePath = filepath.Join(t.TempDir(), "missing.png")
	sc := startScene(t, "sprites", opts)
	if n := len(sc.(*Sprites).sprites); n != 2 {
		t.Errorf("%d sprites, want label and checker", n)
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("nope", testOptions); err == nil {
		t.Error("unknown scene accepted")
	}
	if got := Names(); len(got) != 3 || got[0] != "damage" {
		t.Errorf("Names = %v", got)
	}
}

func TestBounce(t *testing.T) {
	tests := []struct {
		dist float64
		span int
		want int
	}{
		{0, 10, 0}, {4, 10, 4}, {10, 10, 10}, {13, 10, 7}, {20, 10, 0}, {25, 10, 5}, {5, 0, 0}, {5, -3, 0},
	}
	for _, tt := range tests {
		if got := bounce(tt.dist, tt.span); got != tt.want {
			t.Errorf("bounce(%v, %d) = %d, want %d", tt.dist, tt.span, got, tt.want)
		}
	}
}

func TestPaletteAndMix(t *testing.T) {
	p := palette(6, 1, 1)
	if p[0] != raster.Red {
		t.Errorf("hue 0 = %v", p[0])
	}
	if p[2] != raster.Green || p[4] != raster.Blue {
		t.Errorf("palette %v", p)
	}
	if mix(raster.Black, raster.White, 0) != raster.Black || mix(raster.Black, raster.White, 1) != raster.White {
		t.Error("mix endpoints")
	}
}
