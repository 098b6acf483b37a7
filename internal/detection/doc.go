// Package detection finds image features that the pixel-art pipeline reacts to.
//
// Two kinds of features are detected:
//
//   - Edges: boundaries between flat color regions, used to draw outlines
//   - Background: the dominant color around the image corners, used to make
//     the background transparent
//
// # Edge Detection
//
// EdgeStrength produces a grayscale map where brighter pixels sit on stronger
// color boundaries. The pipeline is:
//
//  1. Smoothing: 3x3 low-pass to suppress noise inside blocks
//  2. Edge operator: a Laplacian (default) or a Sobel gradient magnitude
//  3. Luminance: ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B)
//
// EdgeMask thresholds that map into a per-pixel boolean mask.
//
// # Background Detection
//
// BackgroundColor samples a square at each of the four corners, sized to one
// twelfth of the shorter image side, and returns the most frequent exact RGB
// value among the samples. It is a mode, not a mean, so anti-aliased pixels
// do not skew the result.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Masks returned by this package are row-major with index y*width + x.
package detection
