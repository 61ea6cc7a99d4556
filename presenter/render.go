/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package presenter

import (
	"fmt"
	"strings"

	"dirpx.dev/redbox"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	// box frames the whole redbox.
	box lipgloss.Style
	// fatal and soft render the entry badge.
	fatal lipgloss.Style
	soft  lipgloss.Style
	// message renders the exception message.
	message lipgloss.Style
	// frame renders one callstack line.
	frame lipgloss.Style
	dim   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1),
		fatal: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1")).
			Padding(0, 1),
		soft: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Padding(0, 1),
		message: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")),
		frame: r.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true),
	}
}

func (s styles) badge(t redbox.ErrorType) string {
	label := strings.ToUpper(t.String())
	if t == redbox.Fatal {
		return s.fatal.Render(label)
	}
	return s.soft.Render(label)
}

func (s styles) writeEntry(b *strings.Builder, e Entry, maxFrames int) {
	fmt.Fprintf(b, "%s %s %s\n", s.badge(e.Type), s.dim.Render(fmt.Sprintf("#%d", e.Info.ID)), s.message.Render(e.Info.Message))

	frames := e.Info.Callstack
	if len(frames) == 0 {
		b.WriteString(s.dim.Render("  (no callstack)"))
		return
	}
	hidden := 0
	if maxFrames > 0 && len(frames) > maxFrames {
		hidden = len(frames) - maxFrames
		frames = frames[:maxFrames]
	}
	lines := make([]string, 0, len(frames)+1)
	for _, f := range frames {
		lines = append(lines, s.frame.Render("at "+f.String()))
	}
	if hidden > 0 {
		lines = append(lines, s.dim.Render(fmt.Sprintf("  ... %d more frames", hidden)))
	}
	b.WriteString(strings.Join(lines, "\n"))
}
