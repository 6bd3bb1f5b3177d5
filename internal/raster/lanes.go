package raster

// laneWidth is the number of pixels handled per iteration by the bulk fill
// and blend loops. Whatever does not fit a full lane goes through the scalar
// tail, which must produce identical pixels.
const laneWidth = 4

func fillSpan(dst []uint32, v uint32) {
	n := len(dst) &^ (laneWidth - 1)
	for i := 0; i < n; i += laneWidth {
		lane := dst[i : i+laneWidth : i+laneWidth]
		lane[0], lane[1], lane[2], lane[3] = v, v, v, v
	}
	fillScalar(dst[n:], v)
}

func fillScalar(dst []uint32, v uint32) {
	for i := range dst {
		dst[i] = v
	}
}

// blendChannel returns round((s*a + d*(255-a)) / 255) with the divide done
// by shifts. It is exact over the whole 8 bit input range.
func blendChannel(s, d, a uint32) uint32 {
	x := s*a + d*(255-a) + 128
	return (x + x>>8) >> 8
}

// blendPixel blends one packed pixel channel by channel.
func blendPixel(src, dst uint32, a uint32) uint32 {
	r := blendChannel(src&0xFF, dst&0xFF, a)
	g := blendChannel(src>>8&0xFF, dst>>8&0xFF, a)
	b := blendChannel(src>>16&0xFF, dst>>16&0xFF, a)
	return r | g<<8 | b<<16
}

// blendPacked blends red and blue in one multiply, green in another. Each
// channel sits in its own 16 bit field so the products never carry into a
// neighbour; the rounding is the same as blendChannel.
func blendPacked(src, dst uint32, a uint32) uint32 {
	na := 255 - a
	rb := (src&0x00FF00FF)*a + (dst&0x00FF00FF)*na + 0x00800080
	rb = (rb + rb>>8&0x00FF00FF) >> 8 & 0x00FF00FF
	g := (src>>8&0xFF)*a + (dst>>8&0xFF)*na + 0x80
	g = (g + g>>8) >> 8
	return rb | g<<8
}

// blendSpan blends src over dst at uniform opacity a (1..254).
func blendSpan(dst, src []uint32, a uint32) {
	n := min(len(dst), len(src))
	lanes := n &^ (laneWidth - 1)
	for i := 0; i < lanes; i += laneWidth {
		d := dst[i : i+laneWidth : i+laneWidth]
		s := src[i : i+laneWidth : i+laneWidth]
		d[0] = blendPacked(s[0], d[0], a)
		d[1] = blendPacked(s[1], d[1], a)
		d[2] = blendPacked(s[2], d[2], a)
		d[3] = blendPacked(s[3], d[3], a)
	}
	blendScalar(dst[lanes:n], src[lanes:n], a)
}

func blendScalar(dst, src []uint32, a uint32) {
	for i := range dst {
		dst[i] = blendPixel(src[i], dst[i], a)
	}
}
