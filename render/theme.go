package render

// Theme holds the rendering choices that are not terminal state.
type Theme struct {
	// BoldIsBright draws bold text in palette colors 0-7 with their bright
	// variants.
	BoldIsBright bool
	// FaintBlend is how far faint text moves from its foreground toward
	// its background, in [0,1].
	FaintBlend float64
	// BackgroundAlpha applies to every cell background.
	BackgroundAlpha float32
}

var DefaultTheme = Theme{
	BoldIsBright:    true,
	FaintBlend:      0.5,
	BackgroundAlpha: 1,
}
