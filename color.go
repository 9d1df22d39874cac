package glowcast

import (
	"errors"
	"fmt"
)

// Color is an RGB triple applied to the LED strip.
//
// Color is a value type; the zero value is black (all channels off).
type Color struct {
	// R is the red channel (0-255).
	R uint8

	// G is the green channel (0-255).
	G uint8

	// B is the blue channel (0-255).
	B uint8
}

// Predefined colors used by [DefaultPalette].
var (
	Red    = Color{R: 255}
	Green  = Color{G: 255}
	Blue   = Color{B: 255}
	Orange = Color{R: 255, G: 165}
	Purple = Color{R: 128, B: 128}
	White  = Color{R: 255, G: 255, B: 255}
)

// String returns the color as a lowercase hex triplet, e.g. "#ff0000".
// This implements the fmt.Stringer interface.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scale returns the color with every channel scaled by brightness/255.
//
// Scale(255) returns the color unchanged; Scale(0) returns black.
// Rounding is truncating, matching the integer scaling common in LED
// strip drivers.
func (c Color) Scale(brightness uint8) Color {
	if brightness == 255 {
		return c
	}
	b := uint16(brightness)
	return Color{
		R: uint8(uint16(c.R) * b / 255),
		G: uint8(uint16(c.G) * b / 255),
		B: uint8(uint16(c.B) * b / 255),
	}
}

// Band is one temperature interval of a [Palette].
//
// A band matches a temperature t when t >= Min, or t > Min if Exclusive
// is set. Bands are evaluated warmest-first, so a band's upper bound is
// implied by the band above it.
type Band struct {
	// Min is the lower temperature bound of the band in the configured
	// unit system (Celsius by default).
	Min float64

	// Exclusive makes the lower bound strict: the band matches only
	// temperatures strictly greater than Min.
	Exclusive bool

	// Color is the color applied when the band matches.
	Color Color
}

// Palette maps temperatures to colors via ordered, contiguous bands.
//
// Palette is immutable after creation via [NewPalette]. Bands are
// evaluated from warmest to coldest; the first matching band wins.
// Temperatures below every band map to the floor color, making
// [Palette.Classify] a total function over all real temperatures.
type Palette struct {
	bands []Band
	floor Color
}

// NewPalette creates a [Palette] from a floor color and bands ordered
// warmest to coldest.
//
// The floor color is applied to any temperature colder than every band.
// Band minimums must be strictly decreasing so that every temperature
// maps to exactly one color.
//
// Example:
//
//	p, err := glowcast.NewPalette(glowcast.White,
//	    glowcast.Band{Min: 30, Exclusive: true, Color: glowcast.Red},
//	    glowcast.Band{Min: 25, Color: glowcast.Green},
//	    glowcast.Band{Min: 20, Color: glowcast.Blue},
//	)
func NewPalette(floor Color, bands ...Band) (Palette, error) {
	for i := 1; i < len(bands); i++ {
		if bands[i].Min >= bands[i-1].Min {
			return Palette{}, fmt.Errorf("band minimums must be strictly decreasing: band %d (%v) >= band %d (%v)",
				i, bands[i].Min, i-1, bands[i-1].Min)
		}
	}
	// only the warmest band may be open-ended upward, so a strict bound
	// anywhere else would leave its Min value unmapped
	for i := 1; i < len(bands); i++ {
		if bands[i].Exclusive {
			return Palette{}, errors.New("only the first (warmest) band may have an exclusive bound")
		}
	}

	cp := make([]Band, len(bands))
	copy(cp, bands)
	return Palette{bands: cp, floor: floor}, nil
}

// MustPalette is like [NewPalette] but panics if the bands are invalid.
//
// Use this for compile-time constant palettes where you want to fail
// fast on misordered bands. For runtime palettes, use [NewPalette].
func MustPalette(floor Color, bands ...Band) Palette {
	p, err := NewPalette(floor, bands...)
	if err != nil {
		panic("glowcast: invalid palette: " + err.Error())
	}
	return p
}

// Classify maps a temperature to its band color.
//
// Bands are checked warmest-first; the first match wins. Temperatures
// colder than every band return the floor color, so Classify is total:
// every input maps to exactly one color.
func (p Palette) Classify(temperature float64) Color {
	for _, b := range p.bands {
		if b.Exclusive {
			if temperature > b.Min {
				return b.Color
			}
			continue
		}
		if temperature >= b.Min {
			return b.Color
		}
	}
	return p.floor
}

// Bands returns a copy of the palette's bands, ordered warmest to coldest.
// Modifying the returned slice does not affect the palette.
func (p Palette) Bands() []Band {
	cp := make([]Band, len(p.bands))
	copy(cp, p.bands)
	return cp
}

// Floor returns the color applied below the coldest band.
func (p Palette) Floor() Color {
	return p.floor
}

// DefaultPalette is the [Palette] used when none is configured.
//
// Temperatures are in Celsius:
//
//	> 30       red
//	25 to 30   green   (30 itself is green, not red)
//	20 to 25   blue
//	15 to 20   orange
//	10 to 15   purple
//	< 10       white
var DefaultPalette = MustPalette(White,
	Band{Min: 30, Exclusive: true, Color: Red},
	Band{Min: 25, Color: Green},
	Band{Min: 20, Color: Blue},
	Band{Min: 15, Color: Orange},
	Band{Min: 10, Color: Purple},
)
