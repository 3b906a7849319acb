// Package imaging encodes generated textures to disk and reads them back for
// inspection.
//
// Encoding goes through github.com/disintegration/imaging, so the output
// format follows the file extension. Inspection covers metadata (dimensions,
// alpha channel, file size), single-pixel color sampling, per-channel
// statistics, and tiled previews of a texture patch.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. X grows
// rightward and Y grows downward.
//
// # Color Values
//
// All channel values are reported as straight (non-premultiplied) 8-bit
// components, matching what a PNG RGBA8 file stores. A texture pixel with
// gray 200 and alpha 10 is reported as {200, 200, 200, 10}, not as its
// premultiplied equivalent.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless.
package imaging
