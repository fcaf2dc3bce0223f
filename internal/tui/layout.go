package tui

// pageLayout derives component sizes from the terminal dimensions so the
// input panel, result viewport, and status footer share the window sanely.
type pageLayout struct {
	windowWidth    int
	windowHeight   int
	inputWidth     int
	textAreaHeight int
	pickerHeight   int
	viewportWidth  int
	viewportHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		inputWidth:     70,
		textAreaHeight: 8,
		pickerHeight:   10,
		viewportWidth:  80,
		viewportHeight: 20,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height

	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.inputWidth = innerWidth

	// Header, tab strip, notices, and the key legend take a fixed slice;
	// the rest is split between the input panel and the result viewport.
	const chrome = 10
	usable := height - chrome
	if usable < 12 {
		usable = 12
	}
	l.textAreaHeight = usable / 3
	if l.textAreaHeight < 4 {
		l.textAreaHeight = 4
	}
	if l.textAreaHeight > 12 {
		l.textAreaHeight = 12
	}
	l.pickerHeight = l.textAreaHeight + 2

	l.viewportHeight = usable - l.textAreaHeight
	if l.viewportHeight < 6 {
		l.viewportHeight = 6
	}
}
