// Package artwork holds the cover of the playing track and renders it for the terminal.
package artwork

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/gen2brain/avif"
)

// Decode decodes an encoded cover. JPEG, PNG, GIF and AVIF are understood.
func Decode(data []byte) (image.Image, error) {
	if isAVIF(data) {
		img, err := avif.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode avif: %w", err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode artwork: %w", err)
	}
	return img, nil
}

// isAVIF checks the ISO-BMFF ftyp box for an AVIF brand.
func isAVIF(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	brand := string(data[8:12])
	return brand == "avif" || brand == "avis"
}

// Placeholder returns the image shown while a track has no cover.
func Placeholder() image.Image {
	const size = 16

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	bg := color.RGBA{R: 0x31, G: 0x32, B: 0x44, A: 0xff}
	fg := color.RGBA{R: 0xcb, G: 0xa6, B: 0xf7, A: 0xff}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, bg)
		}
	}

	// an eighth note
	for y := 3; y < 12; y++ {
		img.Set(9, y, fg)
	}
	for x := 10; x < 13; x++ {
		img.Set(x, 3+(x-10), fg)
	}
	for y := 10; y < 14; y++ {
		for x := 5; x < 9; x++ {
			img.Set(x, y, fg)
		}
	}

	return img
}

// Provider stores the current cover. It starts with, and resets to, the placeholder.
type Provider struct {
	mu          sync.RWMutex
	image       image.Image
	placeholder image.Image
	version     uint64
}

// NewProvider returns a Provider showing the placeholder.
func NewProvider() *Provider {
	p := &Provider{placeholder: Placeholder()}
	p.image = p.placeholder
	return p
}

// SetImage replaces the cover. A nil image restores the placeholder.
func (p *Provider) SetImage(img image.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if img == nil {
		img = p.placeholder
	}
	p.image = img
	p.version++
}

// Reset restores the placeholder.
func (p *Provider) Reset() {
	p.SetImage(nil)
}

// Image returns the current cover.
func (p *Provider) Image() image.Image {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.image
}

// IsPlaceholder reports whether no real cover is set.
func (p *Provider) IsPlaceholder() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.image == p.placeholder
}

// Version increases every time the cover changes, so renderers can cache.
func (p *Provider) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}
