package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Project links shown at startup.
const (
	SourceURL   = "https://git.lunarclient.top/CubeWhyMC"
	DonateURL   = "https://lunarclient.top/donate"
	DiscordURL  = "https://discord.lunarclient.top"
	TelegramURL = "https://t.me/earthsworth"
)

type bannerLine struct {
	icon string
	text string
	link string
}

var bannerLines = []bannerLine{
	{icon: "💡", text: "Celestial is completely free and open source software. If you bought it anywhere, you got ripped off!"},
	{icon: "💡", text: "Source code is available at", link: SourceURL},
	{icon: "♥️", text: "Donate to us at", link: DonateURL},
	{icon: "💬", text: "Join our Discord!", link: DiscordURL},
	{icon: "✈️", text: "Join our Telegram!", link: TelegramURL},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	linkStyle  = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("14"))
)

// Banner renders the startup greeting. Styling is dropped when colors is
// false.
func Banner(version string, colors bool) string {
	title := "🚀 Welcome to Celestial, the FOSS LunarClient Launcher implementation!"
	if version != "" && version != "dev" {
		title += " (bootstrap " + version + ")"
	}

	var b strings.Builder
	b.WriteString(styled(titleStyle, title, colors))
	for _, line := range bannerLines {
		b.WriteString("\n" + line.icon + " " + line.text)
		if line.link != "" {
			b.WriteString(" " + styled(linkStyle, line.link, colors))
		}
	}
	return b.String()
}

// PrintBanner writes the greeting to w.
func PrintBanner(w io.Writer, version string, colors bool) {
	fmt.Fprintln(w, Banner(version, colors))
}

func styled(s lipgloss.Style, text string, colors bool) string {
	if !colors {
		return text
	}
	return s.Render(text)
}
