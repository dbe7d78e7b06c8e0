// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package editor

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("#6C6C6C")
	high   = lipgloss.Color("#04B575")
	failed = lipgloss.Color("#FF4672")
)

type styles struct {
	Header lipgloss.Style
	Panel  lipgloss.Style
	Title  lipgloss.Style
	High   lipgloss.Style
	Low    lipgloss.Style
	Error  lipgloss.Style
	Muted  lipgloss.Style
	Prompt lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		High:   lipgloss.NewStyle().Foreground(high).Bold(true),
		Low:    lipgloss.NewStyle().Foreground(muted),
		Error:  lipgloss.NewStyle().Foreground(failed),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Prompt: lipgloss.NewStyle().Foreground(accent).Bold(true),
	}
}
