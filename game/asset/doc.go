// Package asset finds the pictures a puzzle can be played with.
//
// Only image headers are decoded: the engine needs the width and height to
// cut the board, the drawing host loads the pixels itself. PNG, JPEG and GIF
// come from the standard library, WebP and BMP from golang.org/x/image.
//
// A Catalog scans one directory and can keep itself current with Watch,
// which follows fsnotify events until its context is cancelled.
package asset
