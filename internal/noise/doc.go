// Package noise generates grayscale noise textures with a randomized,
// opacity-scaled alpha channel.
//
// Every pixel is drawn independently: a uniform gray level in [0, 255] is
// written to the red, green and blue channels, and the alpha channel is
// floor(255 * opacity * r) for a uniform r in [0, 1), clamped into [0, 255].
// The resulting texture is meant to be layered over other artwork as a
// subtle grain, which is why opacity is usually small (the default is 0.15).
//
// # Randomness
//
// Generation draws from an explicit Source. Callers that want a different
// texture on every run pass nil (or NewSource()); tests and reproducible
// renders pass NewSeededSource(seed).
//
// # Raster Format
//
// Textures are *image.NRGBA values: straight (non-premultiplied) 8-bit RGBA,
// which is exactly what a PNG RGBA8 file stores. Pixels are visited in
// row-major order, so a seeded source always yields the same texture for the
// same dimensions.
package noise
