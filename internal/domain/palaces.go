package domain

import "strings"

type palaceInfo struct {
	Element Element
	Color   string
	Pinyin  string
}

// unknownPalaceColor is used for palace names missing from the table.
const unknownPalaceColor = "#B8860B"

// palaceOrder is the table declaration order; text scans and palace
// computation both index into it.
var palaceOrder = []Palace{DaAn, LiuLian, SuXi, ChiKou, XiaoJi, KongWang}

var palaceTable = map[Palace]palaceInfo{
	DaAn:     {Element: Wood, Color: "#228B22", Pinyin: "da an"},
	LiuLian:  {Element: Earth, Color: "#8B4513", Pinyin: "liu lian"},
	SuXi:     {Element: Fire, Color: "#DC143C", Pinyin: "su xi"},
	ChiKou:   {Element: Metal, Color: "#B8860B", Pinyin: "chi kou"},
	XiaoJi:   {Element: Water, Color: "#4169E1", Pinyin: "xiao ji"},
	KongWang: {Element: Earth, Color: "#696969", Pinyin: "kong wang"},
}

var defaultPalaces = []Palace{SuXi, ChiKou, XiaoJi}

const maxElements = 3

// ResolveElements maps a divination source to 1..3 display entries.
// Structured palaces take priority over text; with neither, the default
// set (速喜, 赤口, 小吉) is returned.
func ResolveElements(src Source) []ElementEntry {
	var entries []ElementEntry

	switch s := src.(type) {
	case Structured:
		entries = fromStructured(s.Palaces)
	case RawText:
		entries = scanText(string(s))
	}

	if len(entries) == 0 {
		entries = defaultEntries()
	}
	if len(entries) > maxElements {
		entries = entries[:maxElements]
	}
	return entries
}

func fromStructured(palaces []PalaceRef) []ElementEntry {
	if len(palaces) > maxElements {
		palaces = palaces[:maxElements]
	}
	entries := make([]ElementEntry, 0, len(palaces))
	for _, p := range palaces {
		info, known := palaceTable[Palace(p.Name)]
		e := ElementEntry{
			Name:     p.Name,
			Pinyin:   p.Pinyin,
			Element:  p.Element,
			Color:    unknownPalaceColor,
			Position: p.Position,
		}
		if known {
			e.Color = info.Color
			if e.Element == "" {
				e.Element = info.Element
			}
			if e.Pinyin == "" {
				e.Pinyin = info.Pinyin
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// scanText matches palace names in table order, not order of appearance.
func scanText(text string) []ElementEntry {
	if text == "" {
		return nil
	}
	var entries []ElementEntry
	for _, name := range palaceOrder {
		if strings.Contains(text, string(name)) {
			entries = append(entries, tableEntry(name))
		}
	}
	return entries
}

func defaultEntries() []ElementEntry {
	entries := make([]ElementEntry, len(defaultPalaces))
	for i, name := range defaultPalaces {
		entries[i] = tableEntry(name)
	}
	return entries
}

func tableEntry(name Palace) ElementEntry {
	info := palaceTable[name]
	return ElementEntry{
		Name:    string(name),
		Pinyin:  info.Pinyin,
		Element: info.Element,
		Color:   info.Color,
	}
}

// DefaultPalaces returns the palace references of the default element set.
func DefaultPalaces() []PalaceRef {
	refs := make([]PalaceRef, len(defaultPalaces))
	for i, name := range defaultPalaces {
		info := palaceTable[name]
		refs[i] = PalaceRef{Name: string(name), Pinyin: info.Pinyin, Element: info.Element}
	}
	return refs
}

// ComputePalaces derives the person/matter/outcome palaces from the three
// numbers: each number mod 6 picks a 1-based palace, a remainder of 0
// meaning the sixth (空亡).
func ComputePalaces(numbers [3]int) []PalaceRef {
	positions := [3]string{PositionRen, PositionShi, PositionYing}
	refs := make([]PalaceRef, len(numbers))
	for i, n := range numbers {
		r := n % len(palaceOrder)
		if r < 0 {
			r += len(palaceOrder)
		}
		if r == 0 {
			r = len(palaceOrder)
		}
		name := palaceOrder[r-1]
		info := palaceTable[name]
		refs[i] = PalaceRef{
			Name:     string(name),
			Pinyin:   info.Pinyin,
			Element:  info.Element,
			Position: positions[i],
		}
	}
	return refs
}
