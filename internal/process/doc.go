// Package process cleans up browser process trees left behind by the PDF renderer.
package process
