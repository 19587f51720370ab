package render

// Buffer is a row-major frame of packed 0xRRGGBB pixels, index = y*width+x.
// It is owned by the caller; the scheduler only writes into it during a
// render call and never retains it.
type Buffer []uint32

func NewBuffer(width, height int) Buffer {
	return make(Buffer, width*height)
}

// RGBA expands the packed pixels to an 8-bit RGBA byte slice for texture
// upload or image encoding. Alpha is always opaque.
func (b Buffer) RGBA() []byte {
	out := make([]byte, len(b)*4)
	for i, pix := range b {
		out[i*4+0] = byte(pix >> 16)
		out[i*4+1] = byte(pix >> 8)
		out[i*4+2] = byte(pix)
		out[i*4+3] = 0xFF
	}
	return out
}
