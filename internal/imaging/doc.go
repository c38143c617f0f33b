// Package imaging implements margin detection and cropping for scanned or
// rendered document pages.
//
// A page is processed in four steps:
//
//  1. Decode: a packed Raster (3 or 4 bytes per pixel) becomes a ColorGrid of
//     ARGB samples.
//  2. Profile: every row and every column is scored by how much adjacent
//     pixels differ, and each axis is normalized so its busiest line is 1.
//  3. Locate: each profile is scanned from both ends for the first line above
//     the activity threshold, and a retention margin is given back.
//  4. Crop: the located BoundingBox is cut from the page and the result is
//     optionally padded with a solid border.
//
// CutEdge runs all four steps on a Raster; CutEdgeImage does the same for a
// decoded image.Image.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. A
// BoundingBox counts pixels removed from each edge, so on a w×h page it keeps
// [Left, w-Right) × [Top, h-Bottom).
//
// # Thread Safety
//
// Every detection and cropping function is a pure function of its inputs and
// may be called concurrently on different pages. ImageCache is safe for
// concurrent use.
//
// # Error Handling
//
// Failures wrap one of the package sentinels:
//   - ErrUnsupportedPixelStride: the buffer is not 3 or 4 bytes per pixel
//   - ErrEmptyRaster: the raster has no pixels
//   - ErrInvalidCropExtent: a box would keep zero or negative width or height
//
// Errors are never recovered internally; a failed page yields no output.
package imaging
