// Package icon renders the symbols of the command line and the session view
// in the variant selected by icons.variant.
package icon

import (
	"github.com/playalong-cli/playalong/key"
	"github.com/spf13/viper"
)

type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Play
	Pause
	Stop
	Count
	Progress
)

type variant int

const (
	plain variant = iota
	emoji
	nerd
	squares
)

var variants = map[string]variant{
	"plain":   plain,
	"emoji":   emoji,
	"nerd":    nerd,
	"squares": squares,
}

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return []string{"emoji", "nerd", "plain", "squares"}
}

var glyphs = map[Icon][4]string{
	// plain, emoji, nerd, squares
	Success:  {"✓", "✅", "", "▣"},
	Fail:     {"✖", "❌", "", "▢"},
	Warn:     {"!", "⚠️", "", "◩"},
	Play:     {">", "▶️", "", "▶"},
	Pause:    {"=", "⏸️", "", "◫"},
	Stop:     {"#", "⏹️", "", "■"},
	Count:    {"*", "🥁", "", "◆"},
	Progress: {"@", "⏳", "", "▦"},
}

// Get renders i. An unknown variant renders the plain glyph.
func Get(i Icon) string {
	v, ok := variants[viper.GetString(key.IconsVariant)]
	if !ok {
		v = plain
	}
	return glyphs[i][v]
}
