// Package ui provides the graphical user interface for Save State.
// This file contains icon generation for the system tray.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/yllada/save-state/common"
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	SymbolColor color.RGBA
	// ShowPlay draws a play triangle; otherwise a stop square.
	ShowPlay bool
}

// RunningIconConfig returns the icon config for the running state.
func RunningIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{46, 194, 126, 255}, // Green
		BorderColor: color.RGBA{38, 162, 105, 255}, // Dark green
		SymbolColor: color.RGBA{255, 255, 255, 255},
		ShowPlay:    true,
	}
}

// IdleIconConfig returns the icon config for the idle state.
func IdleIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{154, 153, 150, 255}, // Gray
		BorderColor: color.RGBA{119, 118, 123, 255}, // Dark gray
		SymbolColor: color.RGBA{255, 255, 255, 255},
		ShowPlay:    false,
	}
}

// GenerateIcon renders cfg as a PNG.
func GenerateIcon(cfg IconConfig) []byte {
	size := cfg.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	center := float64(size) / 2
	radius := center - 1

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center)
			switch {
			case d > radius:
			case d > radius-1.5:
				img.Set(x, y, cfg.BorderColor)
			default:
				img.Set(x, y, cfg.FillColor)
			}
		}
	}

	if cfg.ShowPlay {
		drawPlay(img, size, cfg.SymbolColor)
	} else {
		drawStop(img, size, cfg.SymbolColor)
	}

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawPlay draws a right-pointing triangle in the middle third.
func drawPlay(img *image.RGBA, size int, c color.RGBA) {
	left, right := size*3/8, size*11/16
	top, bottom := size*5/16, size*11/16
	mid := float64(top+bottom) / 2
	half := float64(bottom-top) / 2

	for x := left; x <= right; x++ {
		progress := float64(x-left) / float64(right-left)
		reach := half * (1 - progress)
		for y := top; y <= bottom; y++ {
			if math.Abs(float64(y)-mid) <= reach {
				img.Set(x, y, c)
			}
		}
	}
}

// drawStop draws a filled square in the middle third.
func drawStop(img *image.RGBA, size int, c color.RGBA) {
	lo, hi := size*3/8, size*5/8
	for y := lo; y <= hi; y++ {
		for x := lo; x <= hi; x++ {
			img.Set(x, y, c)
		}
	}
}

// Pre-generated icons.
var (
	iconRunning = GenerateIcon(RunningIconConfig())
	iconIdle    = GenerateIcon(IdleIconConfig())
)
