package sprite

// IsBlank reports whether every pixel of the image is fully transparent.
// Only the alpha channel is inspected; a solid-color opaque image is never
// blank.
func IsBlank(img *ImageData) bool {
	for i := 3; i < len(img.Buf); i += 4 {
		if img.Buf[i] != 0 {
			return false
		}
	}
	return true
}
