package render

// Palette is an ordered list of CSS colors assigned to series in turn.
type Palette []string

// DefaultPalette is used when no palette is configured.
var DefaultPalette = Palette{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
}

// NewPalette returns colors as a Palette, or DefaultPalette when empty.
func NewPalette(colors []string) Palette {
	out := make(Palette, 0, len(colors))
	for _, c := range colors {
		if c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return DefaultPalette
	}
	return out
}

// Color returns the i-th color, cycling when i exceeds the palette.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		p = DefaultPalette
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// Take returns the first n colors, cycling as needed.
func (p Palette) Take(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = p.Color(i)
	}
	return out
}
