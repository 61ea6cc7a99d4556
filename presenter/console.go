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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"dirpx.dev/redbox"
	"dirpx.dev/redbox/code"
	"dirpx.dev/redbox/reason"
	"github.com/charmbracelet/lipgloss"
)

// ErrUnknownError is returned by UpdateError when no shown report has the
// requested id.
var ErrUnknownError = errors.New("presenter: no shown error with this id")

// Entry is one report in the current redbox.
type Entry struct {
	Info redbox.ErrorInfo
	Type redbox.ErrorType
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxFrames limits how many frames of each callstack are drawn. Zero
// draws all of them.
func WithMaxFrames(n int) Option {
	return func(c *Console) { c.maxFrames = n }
}

// Console is a redbox.Handler that draws the redbox to a writer.
type Console struct {
	devSupport atomic.Bool
	logger     *slog.Logger
	maxFrames  int

	mu      sync.Mutex
	out     io.Writer
	styles  styles
	entries []Entry
}

var _ redbox.Handler = (*Console)(nil)

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer, devSupport bool, opts ...Option) *Console {
	c := &Console{
		logger: slog.Default(),
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
	c.devSupport.Store(devSupport)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDevSupport switches reporting on or off at runtime.
func (c *Console) SetDevSupport(enabled bool) { c.devSupport.Store(enabled) }

// IsDevSupportEnabled implements redbox.Handler.
func (c *Console) IsDevSupportEnabled() bool { return c.devSupport.Load() }

// ShowNewError adds a report to the redbox and redraws it.
func (c *Console) ShowNewError(info redbox.ErrorInfo, typ redbox.ErrorType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, Entry{Info: info.Clone(), Type: typ})
	c.logger.Info("redbox shown", "id", info.ID, "type", typ.String(), "message", info.Message, "frames", len(info.Callstack))
	return c.drawLocked()
}

// UpdateError replaces the report with the same id, keeping its type.
func (c *Console) UpdateError(info redbox.ErrorInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].Info.ID == info.ID {
			c.entries[i].Info = info.Clone()
			c.logger.Info("redbox updated", "id", info.ID, "message", info.Message)
			return c.drawLocked()
		}
	}
	c.logger.Warn("redbox update for unknown error", "id", info.ID)
	return redbox.E(code.NotFound, fmt.Sprintf("no shown error with id %d", info.ID),
		redbox.WithReasonOption(reason.RedboxIDUnknown),
		redbox.WithDetailOption("id", info.ID),
		redbox.WithCauseOption(ErrUnknownError),
	)
}

// DismissRedbox clears every report. Dismissing an empty redbox is a no-op.
func (c *Console) DismissRedbox() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) == 0 {
		return nil
	}
	c.logger.Info("redbox dismissed", "errors", len(c.entries))
	c.entries = nil
	_, err := io.WriteString(c.out, c.styles.dim.Render("redbox dismissed")+"\n")
	return err
}

// Snapshot returns a copy of the reports currently shown, oldest first.
func (c *Console) Snapshot() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = Entry{Info: e.Info.Clone(), Type: e.Type}
	}
	return out
}

func (c *Console) drawLocked() error {
	var b strings.Builder
	for i, e := range c.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		c.styles.writeEntry(&b, e, c.maxFrames)
	}
	_, err := io.WriteString(c.out, c.styles.box.Render(b.String())+"\n")
	return err
}
