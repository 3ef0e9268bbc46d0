package components

import (
	"fmt"
	"strings"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// Progress renders completion like: ■■■■□□□□ 50%
type Progress struct {
	Percent int // 0..100
	Width   int // character width of the bar portion
}

// NewProgress creates a Progress for percent, clamped to 0..100.
func NewProgress(percent, width int) Progress {
	return Progress{Percent: max(0, min(100, percent)), Width: width}
}

// View returns the rendered progress bar string.
func (p Progress) View() string {
	if p.Width <= 0 {
		return fmt.Sprintf("%d%%", p.Percent)
	}
	filled := p.Percent * p.Width / 100
	return fmt.Sprintf("%s %d%%",
		strings.Repeat(filledChar, filled)+strings.Repeat(emptyChar, p.Width-filled),
		p.Percent)
}
