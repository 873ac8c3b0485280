// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	docIndent    = 4  // spaces to indent document entries
	idWidth      = 35 // Base width for document id
	journalWidth = 25 // Width for journal name
)

// 📄 Document is one routed document for logging
type Document struct {
	ID        string // Document id
	Journal   string // Journal name
	Routed    bool   // Whether the decision was Yes
	Skipped   bool   // Whether the journal is in the skip list
	ShortText bool   // Whether the text was below the minimum length
	Cat1      int    // Category 1 matches
	Age       int    // Age matches
	Cat2      int    // Category 2 matches
	Excludes  int    // Exclusion matches across all categories
}

// 📦 Run represents a batch run for logging
type Run struct {
	ID        string // Run id
	Documents int    // Number of documents queued
	Workers   int    // Number of workers
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	run     *Run
	routed  int
	docs    int
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatDocument formats a routed document for display
func (l *Logger) formatDocument(doc Document) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case doc.Skipped:
		symbol = '⊘'
		symbolColor = color.FgYellow
	case doc.Routed:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '✗'
		symbolColor = color.FgRed
	}

	counts := fmt.Sprintf("cat1=%d age=%d cat2=%d", doc.Cat1, doc.Age, doc.Cat2)
	if doc.Excludes > 0 {
		counts += fmt.Sprintf(" excl=%d", doc.Excludes)
	}
	if doc.ShortText {
		counts += " short"
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", docIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", idWidth, doc.ID),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", journalWidth, doc.Journal)),
		counts)
}

// 📝 LogDocument logs a routed document
func (l *Logger) LogDocument(ctx context.Context, doc Document) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.docs++
	if doc.Routed {
		l.routed++
	}

	fmt.Fprintln(l.console, l.formatDocument(doc))

	l.zlog.Info().
		Str("id", doc.ID).
		Str("journal", doc.Journal).
		Bool("routed", doc.Routed).
		Bool("skipped", doc.Skipped).
		Bool("short_text", doc.ShortText).
		Int("cat1", doc.Cat1).
		Int("age", doc.Age).
		Int("cat2", doc.Cat2).
		Int("excludes", doc.Excludes).
		Msg("document routed")
}

// 📝 StartRun starts a new batch run
func (l *Logger) StartRun(ctx context.Context, run Run) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.run = &run
	l.routed = 0
	l.docs = 0

	fmt.Fprintf(l.console, "[routing %s]\n",
		color.New(color.FgCyan).Sprintf("%d documents", run.Documents))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(run.ID),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d workers", run.Workers))

	l.zlog.Info().
		Str("run", run.ID).
		Int("documents", run.Documents).
		Int("workers", run.Workers).
		Msg("starting batch run")
}

// 📝 EndRun ends the current batch run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.run == nil {
		return
	}

	l.zlog.Info().
		Str("run", l.run.ID).
		Int("documents", l.docs).
		Int("routed", l.routed).
		Msg("batch run complete")

	l.run = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("figtriage")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
