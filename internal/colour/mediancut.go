package colour

import (
	"cmp"
	"fmt"
	"slices"
)

// PaletteSize is the number of colours in an assembled Palette.
const PaletteSize = 16

// axis identifies a colour channel.
type axis uint8

const (
	axisR axis = iota
	axisG
	axisB
)

// weightedColour is a distinct colour and its occurrence count.
type weightedColour struct {
	c RGB
	n uint64
}

// bucket is a weighted group of distinct colours used only while quantizing.
type bucket struct {
	colours []weightedColour
	total   uint64
}

// Quantize reduces pixels to exactly k representative colours using median cut.
//
// The result is sorted by ascending relative luminance (ties broken by R, G, B) and
// depends only on the multiset of input colours, never on their order. When the input
// has fewer than k distinct colours the highest-luminance representative is repeated.
// An empty input yields k copies of black.
//
// Quantize panics if k is not positive.
func Quantize(pixels []RGB, k int) []RGB {
	if k <= 0 {
		panic(fmt.Sprintf("colour: quantize target must be positive, got %d", k))
	}

	out := make([]RGB, 0, k)
	if len(pixels) == 0 {
		for range k {
			out = append(out, Black)
		}
		return out
	}

	buckets := []bucket{seedBucket(pixels)}
	for len(buckets) < k {
		idx, ax := widestBucket(buckets)
		if idx < 0 {
			break
		}
		buckets = splitAt(buckets, idx, ax)
	}

	for _, b := range buckets {
		out = append(out, b.mean())
	}
	sortByLuminance(out)

	if len(out) > k {
		out = out[:k]
	}
	last := out[len(out)-1]
	for len(out) < k {
		out = append(out, last)
	}
	return out
}

// Quantize16 quantizes pixels to the fixed palette size.
func Quantize16(pixels []RGB) [PaletteSize]RGB {
	var out [PaletteSize]RGB
	copy(out[:], Quantize(pixels, PaletteSize))
	return out
}

// seedBucket aggregates pixels into distinct colours ordered by (R, G, B).
// Map iteration order is random, so the explicit sort is what makes the
// quantizer independent of input ordering.
func seedBucket(pixels []RGB) bucket {
	counts := make(map[RGB]uint64, 256)
	for _, p := range pixels {
		counts[p]++
	}

	colours := make([]weightedColour, 0, len(counts))
	for c, n := range counts {
		colours = append(colours, weightedColour{c: c, n: n})
	}
	slices.SortFunc(colours, func(a, b weightedColour) int {
		return Compare(a.c, b.c)
	})

	return bucket{colours: colours, total: uint64(len(pixels))}
}

// splitAt removes the bucket at idx by moving the last bucket into its slot,
// then appends the two halves, left first. The resulting order decides which
// bucket wins later range ties.
func splitAt(buckets []bucket, idx int, ax axis) []bucket {
	left, right := buckets[idx].split(ax)
	last := len(buckets) - 1
	buckets[idx] = buckets[last]
	buckets = buckets[:last]
	return append(buckets, left, right)
}

// widestBucket returns the index of the splittable bucket with the largest channel
// range and the channel to split on. The lowest index wins ties. It returns -1 when
// every bucket holds a single colour.
func widestBucket(buckets []bucket) (int, axis) {
	best := -1
	bestAxis := axisR
	bestRange := -1
	for i, b := range buckets {
		if len(b.colours) < 2 {
			continue
		}
		r, ax := b.widestAxis()
		if r > bestRange {
			best, bestAxis, bestRange = i, ax, r
		}
	}
	return best, bestAxis
}

// widestAxis returns the largest channel range in the bucket and its channel.
// Ties prefer red, then green, then blue.
func (b bucket) widestAxis() (int, axis) {
	rMin, gMin, bMin := uint8(255), uint8(255), uint8(255)
	var rMax, gMax, bMax uint8
	for _, wc := range b.colours {
		rMin, rMax = min(rMin, wc.c.R), max(rMax, wc.c.R)
		gMin, gMax = min(gMin, wc.c.G), max(gMax, wc.c.G)
		bMin, bMax = min(bMin, wc.c.B), max(bMax, wc.c.B)
	}
	rr := int(rMax) - int(rMin)
	gr := int(gMax) - int(gMin)
	br := int(bMax) - int(bMin)

	switch {
	case rr >= gr && rr >= br:
		return rr, axisR
	case gr >= br:
		return gr, axisG
	default:
		return br, axisB
	}
}

// split divides the bucket at the weighted median of the given channel.
// Both halves keep at least one colour and their totals sum to the parent's.
func (b bucket) split(ax axis) (bucket, bucket) {
	colours := slices.Clone(b.colours)
	slices.SortStableFunc(colours, func(x, y weightedColour) int {
		return cmp.Compare(channel(x.c, ax), channel(y.c, ax))
	})

	half := b.total / 2
	var acc uint64
	at := len(colours) - 1
	for i, wc := range colours {
		acc += wc.n
		if acc >= half {
			at = i + 1
			break
		}
	}
	at = max(1, min(at, len(colours)-1))

	left := bucket{colours: colours[:at:at]}
	right := bucket{colours: colours[at:]}
	for _, wc := range left.colours {
		left.total += wc.n
	}
	right.total = b.total - left.total
	return left, right
}

// mean returns the weight-averaged colour of the bucket, truncating each channel.
func (b bucket) mean() RGB {
	if b.total == 0 {
		return Black
	}
	var r, g, bl uint64
	for _, wc := range b.colours {
		r += uint64(wc.c.R) * wc.n
		g += uint64(wc.c.G) * wc.n
		bl += uint64(wc.c.B) * wc.n
	}
	return RGB{R: uint8(r / b.total), G: uint8(g / b.total), B: uint8(bl / b.total)}
}

func channel(c RGB, ax axis) uint8 {
	switch ax {
	case axisR:
		return c.R
	case axisG:
		return c.G
	default:
		return c.B
	}
}

// sortByLuminance sorts colours by ascending relative luminance, breaking ties by R, G, B.
func sortByLuminance(colours []RGB) {
	slices.SortFunc(colours, func(a, b RGB) int {
		if c := cmp.Compare(a.Luminance(), b.Luminance()); c != 0 {
			return c
		}
		return Compare(a, b)
	})
}
