package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Theme holds the visual constants of a frame
type Theme struct {
	PickOpacity      float64 `yaml:"pick_opacity" json:"pick_opacity"`
	DragOpacity      float64 `yaml:"drag_opacity" json:"drag_opacity"`
	HighlightColor   string  `yaml:"highlight_color" json:"highlight_color"`
	HighlightOpacity float64 `yaml:"highlight_opacity" json:"highlight_opacity"`
	BorderColor      string  `yaml:"border_color" json:"border_color"`
	BackdropColor    string  `yaml:"backdrop_color" json:"backdrop_color"`
	BackdropOpacity  float64 `yaml:"backdrop_opacity" json:"backdrop_opacity"`
	TextColor        string  `yaml:"text_color" json:"text_color"`
	MessageWidth     float64 `yaml:"message_width" json:"message_width"`
	MessageHeight    float64 `yaml:"message_height" json:"message_height"`

	// Filled from the messages section of the configuration
	StartMessage string `yaml:"-" json:"start_message"`
	WonMessage   string `yaml:"-" json:"won_message"`
}

// DefaultTheme returns the stock look: translucent ghosts, a green hover
// highlight and a half-transparent black message box.
func DefaultTheme() Theme {
	return Theme{
		PickOpacity:      0.8,
		DragOpacity:      0.6,
		HighlightColor:   "green",
		HighlightOpacity: 0.4,
		BorderColor:      "black",
		BackdropColor:    "black",
		BackdropOpacity:  0.5,
		TextColor:        "white",
		MessageWidth:     200,
		MessageHeight:    50,
		StartMessage:     "Click to Start",
		WonMessage:       "You won !",
	}
}

// Validate checks opacities and colours
func (t Theme) Validate() error {
	for name, v := range map[string]float64{
		"pick_opacity":      t.PickOpacity,
		"drag_opacity":      t.DragOpacity,
		"highlight_opacity": t.HighlightOpacity,
		"backdrop_opacity":  t.BackdropOpacity,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("theme: %s must be between 0 and 1, got %g", name, v)
		}
	}
	for name, c := range map[string]string{
		"highlight_color": t.HighlightColor,
		"border_color":    t.BorderColor,
		"backdrop_color":  t.BackdropColor,
		"text_color":      t.TextColor,
	} {
		if _, err := ParseColor(c); err != nil {
			return fmt.Errorf("theme: %s: %w", name, err)
		}
	}
	if t.MessageWidth <= 0 || t.MessageHeight <= 0 {
		return fmt.Errorf("theme: message box must be positive, got %gx%g", t.MessageWidth, t.MessageHeight)
	}
	return nil
}

var namedColors = map[string]color.RGBA{
	"black": {0, 0, 0, 255},
	"white": {255, 255, 255, 255},
	"green": {0, 128, 0, 255},
	"red":   {255, 0, 0, 255},
	"blue":  {0, 0, 255, 255},
	"gray":  {128, 128, 128, 255},
}

// ParseColor accepts "#rgb", "#rrggbb" or a basic colour name
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
