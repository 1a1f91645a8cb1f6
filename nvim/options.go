// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: nvim/options.go
// Summary: UI extension option state and guifont font-list parsing.

package nvim

import "strings"

// Options holds the UI extension flags announced through option_set. The
// struct is comparable so redundant option_set batches can be detected and
// suppressed.
type Options struct {
	ExtCmdline    bool
	ExtHlstate    bool
	ExtLinegrid   bool
	ExtMessages   bool
	ExtMultigrid  bool
	ExtPopupmenu  bool
	ExtTabline    bool
	ExtTermcolors bool
}

// Font is one parsed guifont entry.
type Font struct {
	Family string
	Size   float64
}

// parseFont splits an optional trailing ":h<digits>" point-size suffix off
// a single font entry. Entries without a size use defaultSize.
func parseFont(fontstr string, defaultSize float64) Font {
	index := len(fontstr)
	multiply := 1.0
	size := 0.0

	for index > 0 {
		digit := fontstr[index-1]
		if digit < '0' || digit > '9' {
			break
		}
		size += multiply * float64(digit-'0')
		multiply *= 10
		index--
	}

	if size != 0 && index >= 2 && fontstr[index-1] == 'h' && fontstr[index-2] == ':' {
		return Font{Family: fontstr[:index-2], Size: size}
	}
	return Font{Family: fontstr, Size: defaultSize}
}

// indexUnescapedComma finds the next comma not preceded by a backslash.
// Runs of backslashes are not treated specially; the escaping here is best
// effort, matching how the option is produced in practice.
func indexUnescapedComma(s string, pos int) int {
	for {
		i := strings.IndexByte(s[pos:], ',')
		if i < 0 {
			return -1
		}
		i += pos
		if i == 0 || s[i-1] != '\\' {
			return i
		}
		pos = i + 1
	}
}

// ParseFontList splits a guifont option string into fonts. Fields are
// separated by unescaped commas; one leading space per field is trimmed.
func ParseFontList(fontopt string, defaultSize float64) []Font {
	if fontopt == "" {
		return nil
	}

	var fonts []Font
	index := 0

	for {
		pos := indexUnescapedComma(fontopt, index)
		if pos < 0 {
			fonts = append(fonts, parseFont(fontopt[index:], defaultSize))
			return fonts
		}

		fonts = append(fonts, parseFont(fontopt[index:pos], defaultSize))

		index = pos + 1
		if index < len(fontopt) && fontopt[index] == ' ' {
			index++
		}
	}
}
