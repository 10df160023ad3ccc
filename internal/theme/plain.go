package theme

// Plain returns the monochrome theme.
func Plain() Theme {
	return compose(NamePlain, decorator{
		paint:  func(_ Role, s string) string { return s },
		escape: func(s string) string { return s },
	})
}
