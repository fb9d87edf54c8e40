package display

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"tempwatch/internal/config"
)

// ClearScreen erases the terminal and homes the cursor.
const ClearScreen = "\x1b[2J\x1b[H"

const (
	colorBlack  = lipgloss.Color("0")
	colorRed    = lipgloss.Color("1")
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
)

// Renderer writes frames to a terminal.
type Renderer struct {
	out    io.Writer
	styles map[Tier]lipgloss.Style
}

// NewRenderer creates a renderer for w. colorMode is one of config.ColorAuto,
// config.ColorAlways or config.ColorNever.
func NewRenderer(w io.Writer, colorMode string) *Renderer {
	lr := lipgloss.NewRenderer(w)
	switch colorMode {
	case config.ColorAlways:
		lr.SetColorProfile(termenv.ANSI)
	case config.ColorNever:
		lr.SetColorProfile(termenv.Ascii)
	}
	// auto: lipgloss detects the profile from w, which is Ascii for non-terminals

	return &Renderer{
		out: w,
		styles: map[Tier]lipgloss.Style{
			Neutral: lr.NewStyle().Foreground(colorBlack),
			Cool:    lr.NewStyle().Foreground(colorGreen),
			Warm:    lr.NewStyle().Foreground(colorYellow),
			Hot:     lr.NewStyle().Foreground(colorRed),
		},
	}
}

// Colorize styles s with the color of tier t.
func (r *Renderer) Colorize(t Tier, s string) string {
	return r.styles[t].Render(s)
}

// Begin clears the screen and writes the header and hint. It is called
// before collection so a slow utility leaves the new header on screen.
func (r *Renderer) Begin(header string) error {
	_, err := io.WriteString(r.out, ClearScreen+header+"\n"+Hint)
	return err
}

// Render writes the readings of f under the header written by Begin.
//
//	<label>\t(°C)\t>>>\t<value>[\t(<delta>)]
func (r *Renderer) Render(f Frame) error {
	bw := bufio.NewWriter(r.out)

	for _, l := range f.Lines {
		bw.WriteString("\n")
		bw.WriteString(l.Label)
		bw.WriteString("\t(°C)\t>>>\t")
		bw.WriteString(r.Colorize(l.Tier, FormatValue(l.Value)))
		if l.HasDelta {
			bw.WriteString("\t(")
			bw.WriteString(r.Colorize(l.DeltaTier, FormatDelta(l.Delta)))
			bw.WriteString(")")
		}
	}
	bw.WriteString("\n")

	return bw.Flush()
}

// Notice writes a single line outside of a frame.
func (r *Renderer) Notice(msg string) error {
	_, err := io.WriteString(r.out, msg+"\n")
	return err
}
