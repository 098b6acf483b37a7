// Package imaging turns raster images into pixel art.
//
// The entry point is Pixelate, which takes a decoded image.Image and a Params
// value and returns a new *image.NRGBA with a blocky pixel-art structure. The
// output adapters ToRasterBytes (PNG) and ToVectorDocument (SVG) serialize
// the result. All operations are pure: each call allocates its own buffers,
// never modifies its input and keeps no state between calls, so concurrent
// calls on different or identical images need no locking.
//
// # Pipeline
//
//  1. Grid (PixelateGrid): area-average into pixel_size blocks, then scale
//     back up with nearest-neighbor so every block is one flat color
//  2. Color (ApplyColorMode): full, N-color quantization, black & white,
//     GameBoy or custom palette, or one of the cartoon styles
//  3. Alpha: optionally pixelate the alpha channel on the same grid and merge
//  4. Background (RemoveBackground): optionally make the corner color
//     transparent
//
// # Output Size
//
// The grid pass keeps only whole blocks. A 20x20 image pixelated with
// pixel_size 8 yields a 16x16 result. Callers must read the output bounds
// rather than assume the input size.
//
// # Color Modes
//
// Unknown mode names parse to ModeFull, and N-color modes with no color count
// leave colors untouched. Both fallbacks are silent; ParseColorMode reports
// whether the name was recognized for callers that want to reject it.
//
// # Coordinate System
//
// All coordinates are 0-based with (0,0) at the top-left corner. Internal
// buffers are row-major with pixel offset y*stride + x*4.
//
// # Error Handling
//
// Functions return wrapped sentinel errors that can be tested with errors.Is:
//   - ErrInvalidImage: nil or empty images
//   - ErrInvalidParameter: pixel size below 1, negative tolerance, bad palette
//   - ErrEncodingFailure: PNG encoding failed
//   - ErrUnsupportedFile: ImageCache rejected a file by extension or size
package imaging
