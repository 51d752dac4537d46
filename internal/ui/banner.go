package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner is the NovelKit wordmark shown by init and version.
const Banner = `███╗   ██╗ ██████╗ ██╗   ██╗███████╗██╗     ██╗  ██╗██╗████████╗
████╗  ██║██╔═══██╗██║   ██║██╔════╝██║     ██║ ██╔╝██║╚══██╔══╝
██╔██╗ ██║██║   ██║██║   ██║█████╗  ██║     █████╔╝ ██║   ██║
██║╚██╗██║██║   ██║╚██╗ ██╔╝██╔══╝  ██║     ██╔═██╗ ██║   ██║
██║ ╚████║╚██████╔╝ ╚████╔╝ ███████╗███████╗██║  ██╗██║   ██║
╚═╝  ╚═══╝ ╚═════╝   ╚═══╝  ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝   ╚═╝`

// Tagline accompanies the banner.
const Tagline = "AI-Assisted Novel Writing Toolkit"

// bannerColors cycles per line: bright blue, blue, cyan, bright cyan,
// white, bright white.
var bannerColors = []string{"12", "4", "6", "14", "7", "15"}

// PrintBanner writes the wordmark with per-line color cycling, followed by
// the tagline.
func PrintBanner(w io.Writer) {
	for i, line := range strings.Split(Banner, "\n") {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(bannerColors[i%len(bannerColors)]))
		fmt.Fprintln(w, style.Render(line))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, Muted.Italic(true).Render(Tagline))
	fmt.Fprintln(w)
}
