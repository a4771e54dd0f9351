package config

import "strings"

// AppVersion is the version of the application.
var AppVersion string // Set via -ldflags at build time

// AppName is the name of the application.
const AppName = "PixelVeil"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// MaxPhotos is the hard cap on resident photos. Adds beyond the cap are
// truncated and reported, never treated as a hard failure.
const MaxPhotos = 20

// MaxLiveCanvases is the maximum number of photos that may hold a decoded
// full-resolution surface at the same time. The least-recently-active
// surfaces are evicted first; the active photo is never evicted.
const MaxLiveCanvases = 3

// MaxHistory bounds each photo's undo and redo stacks. The oldest snapshot
// is dropped when the cap is exceeded.
const MaxHistory = 50

// MinFaceSize is the minimum width/height of a face box, in image pixels,
// after any user edit.
const MinFaceSize = 20

// MinManualFaceSize is the minimum width/height of a freshly drawn manual
// region, in image pixels.
const MinManualFaceSize = 10

// MinTouchPx is the minimum size of an interactive affordance (resize
// handle, delete control) in screen pixels. The effective image-space hit
// box is derived from the current image-to-display scale.
const MinTouchPx = 24

// MaxFileBytes is the largest input file accepted for decoding.
const MaxFileBytes = 64 << 20 // 64 MB

// ThumbSize is the edge length of the square queue-badge thumbnails.
const ThumbSize = 96
