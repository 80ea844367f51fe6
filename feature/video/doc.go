// Package video adapts behavior video files as external-reference image
// series. It is the main client of external-mode container merging.
package video
