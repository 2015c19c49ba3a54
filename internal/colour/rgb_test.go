package colour

import (
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// sampleColours covers primaries, greys and a spread of mixed colours.
var sampleColours = []RGB{
	{0, 0, 0}, {255, 255, 255}, {128, 128, 128}, {1, 1, 1}, {10, 10, 10},
	{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 0}, {0, 255, 255}, {255, 0, 255},
	{10, 20, 30}, {240, 245, 250}, {198, 48, 59}, {24, 144, 242}, {242, 188, 12},
	{36, 184, 92}, {17, 17, 27}, {205, 214, 244}, {243, 139, 168}, {250, 179, 135},
	{137, 180, 250}, {88, 91, 112}, {255, 128, 0}, {100, 200, 50}, {50, 100, 200},
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "#ff0000"},
		{name: "green", rgb: RGB{R: 0, G: 255, B: 0}, want: "#00ff00"},
		{name: "blue", rgb: RGB{R: 0, G: 0, B: 255}, want: "#0000ff"},
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}, want: "#000000"},
		{name: "mixed", rgb: RGB{R: 0x1a, G: 0x2b, B: 0x3c}, want: "#1a2b3c"},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: "#808080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	got := RGB{R: 10, G: 20, B: 30}.String()
	if got != "rgb(10, 20, 30)" {
		t.Errorf("String() = %s, want rgb(10, 20, 30)", got)
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{name: "opaque", color: color.RGBA{R: 255, G: 0, B: 0, A: 255}, want: RGB{R: 255}},
		{name: "nrgba", color: color.NRGBA{R: 12, G: 34, B: 56, A: 255}, want: RGB{R: 12, G: 34, B: 56}},
		{name: "grey", color: color.Gray{Y: 99}, want: RGB{R: 99, G: 99, B: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.color); got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{in: "#1a2b3c", want: RGB{R: 0x1a, G: 0x2b, B: 0x3c}},
		{in: "FFFFFF", want: White},
		{in: " #000000 ", want: Black},
		{in: "#fff", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b RGB
		want int
	}{
		{RGB{1, 0, 0}, RGB{0, 255, 255}, 1},
		{RGB{0, 1, 0}, RGB{0, 0, 255}, 1},
		{RGB{0, 0, 1}, RGB{0, 0, 2}, -1},
		{RGB{5, 5, 5}, RGB{5, 5, 5}, 0},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLuminanceExtremes(t *testing.T) {
	if l := Black.Luminance(); l >= 0.001 {
		t.Errorf("Luminance(black) = %f, want < 0.001", l)
	}
	if l := White.Luminance(); l <= 0.99 {
		t.Errorf("Luminance(white) = %f, want > 0.99", l)
	}
}

func TestLuminanceMatchesLinearRGB(t *testing.T) {
	for _, c := range sampleColours {
		r, g, b := c.Normalized()
		lr, lg, lb := colorful.Color{R: r, G: g, B: b}.LinearRgb()
		want := 0.2126*lr + 0.7152*lg + 0.0722*lb
		if got := c.Luminance(); math.Abs(got-want) > 1e-9 {
			t.Errorf("Luminance(%s) = %f, want %f", c.Hex(), got, want)
		}
	}
}

func TestHSLMatchesColorful(t *testing.T) {
	for _, c := range sampleColours {
		r, g, b := c.Normalized()
		h, s, l := colorful.Color{R: r, G: g, B: b}.Hsl()
		got := c.HSL()
		if math.Abs(got.H-h) > 1e-6 || math.Abs(got.S-s) > 1e-6 || math.Abs(got.L-l) > 1e-6 {
			t.Errorf("HSL(%s) = %+v, want {H:%f S:%f L:%f}", c.Hex(), got, h, s, l)
		}
		if got.H < 0 || got.H >= 360 {
			t.Errorf("HSL(%s).H = %f, want [0,360)", c.Hex(), got.H)
		}
	}
}

func TestHSLAchromatic(t *testing.T) {
	for _, v := range []uint8{0, 64, 128, 255} {
		got := RGB{R: v, G: v, B: v}.HSL()
		if got.H != 0 || got.S != 0 {
			t.Errorf("HSL(grey %d) = %+v, want zero hue and saturation", v, got)
		}
	}
}

func TestHSLHues(t *testing.T) {
	tests := []struct {
		c RGB
		h float64
	}{
		{RGB{255, 0, 0}, 0},
		{RGB{255, 255, 0}, 60},
		{RGB{0, 255, 0}, 120},
		{RGB{0, 0, 255}, 240},
		{RGB{255, 0, 255}, 300},
	}
	for _, tt := range tests {
		if got := tt.c.HSL().H; math.Abs(got-tt.h) > 1e-9 {
			t.Errorf("HSL(%s).H = %f, want %f", tt.c.Hex(), got, tt.h)
		}
	}
}

func TestContrastRatioSymmetric(t *testing.T) {
	for _, a := range sampleColours {
		for _, b := range sampleColours {
			ab := ContrastRatio(a, b)
			ba := ContrastRatio(b, a)
			if math.Abs(ab-ba) > 1e-6 {
				t.Errorf("ContrastRatio(%s, %s) = %f but reversed = %f", a.Hex(), b.Hex(), ab, ba)
			}
			if ab < 1 || ab > 21.0001 {
				t.Errorf("ContrastRatio(%s, %s) = %f, want within [1, 21]", a.Hex(), b.Hex(), ab)
			}
		}
	}
}

func TestContrastRatioBlackWhite(t *testing.T) {
	if got := ContrastRatio(Black, White); math.Abs(got-21) > 1e-9 {
		t.Errorf("ContrastRatio(black, white) = %f, want 21", got)
	}
	if got := ContrastRatio(White, White); got != 1 {
		t.Errorf("ContrastRatio(white, white) = %f, want 1", got)
	}
}

func TestLerpLinearIdentity(t *testing.T) {
	for _, a := range sampleColours {
		for _, tt := range []float64{0, 0.15, 0.5, 0.9, 1} {
			if got := LerpLinear(a, a, tt); got != a {
				t.Errorf("LerpLinear(%s, %s, %v) = %s", a.Hex(), a.Hex(), tt, got.Hex())
			}
		}
	}
}

func TestLerpLinearEndpoints(t *testing.T) {
	within := func(x, y uint8) bool {
		d := int(x) - int(y)
		return d >= -1 && d <= 1
	}
	for _, a := range sampleColours {
		for _, b := range sampleColours {
			got0 := LerpLinear(a, b, 0)
			if !within(got0.R, a.R) || !within(got0.G, a.G) || !within(got0.B, a.B) {
				t.Errorf("LerpLinear(%s, %s, 0) = %s", a.Hex(), b.Hex(), got0.Hex())
			}
			got1 := LerpLinear(a, b, 1)
			if !within(got1.R, b.R) || !within(got1.G, b.G) || !within(got1.B, b.B) {
				t.Errorf("LerpLinear(%s, %s, 1) = %s", a.Hex(), b.Hex(), got1.Hex())
			}
		}
	}
}

func TestLerpLinearMidpoint(t *testing.T) {
	// Half of the linear light between black and white is sRGB ~0.735.
	got := LerpLinear(Black, White, 0.5)
	want := RGB{R: 188, G: 188, B: 188}
	if got != want {
		t.Errorf("LerpLinear(black, white, 0.5) = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestLinearRoundTrip(t *testing.T) {
	for i := 0; i <= 255; i++ {
		x := float64(i) / 255
		if got := LinearToSRGB(SRGBToLinear(x)); math.Abs(got-x) > 1e-9 {
			t.Errorf("round trip of %d = %f, want %f", i, got, x)
		}
	}
}

func TestHueDistance(t *testing.T) {
	tests := []struct {
		h1, h2, want float64
	}{
		{0, 0, 0},
		{10, 350, 20},
		{0, 180, 180},
		{90, 270, 180},
		{300, 30, 90},
	}
	for _, tt := range tests {
		if got := HueDistance(tt.h1, tt.h2); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HueDistance(%v, %v) = %v, want %v", tt.h1, tt.h2, got, tt.want)
		}
	}
}
