package client

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ghost2804/finhub/pkg/models/market"
)

// npr groups digits in quote rows: 1650.4 renders as 1,650.40.
var npr = message.NewPrinter(language.English)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	termStyles = map[string]lipgloss.Style{
		ClassUser:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		ClassBot:      lipgloss.NewStyle(),
		ClassPending:  lipgloss.NewStyle().Faint(true).Italic(true),
		ClassError:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		ClassPositive: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		ClassNegative: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// quoteRow lays out one snapshot row for the watch table.
func quoteRow(symbol string, q market.Quote) string {
	name := q.Name
	if name == "" {
		name = symbol
	}
	return npr.Sprintf("%-14s %-24.24s %12.2f %+10.2f %+9.2f%%",
		symbol, name, q.Price, q.Change, q.ChangePercent)
}

// TermSurface renders elements as styled lines on a terminal. Every
// mutation repaints the whole frame, so removals and wholesale replacement
// come out right without per-line cursor bookkeeping.
type TermSurface struct {
	mu    sync.Mutex
	w     io.Writer
	title string
	md    *glamour.TermRenderer

	seq   Handle
	items []surfaceItem
}

type surfaceItem struct {
	h     Handle
	class string
	text  string
}

// NewTermSurface draws onto w, with an optional title line on every frame.
func NewTermSurface(w io.Writer, title string) *TermSurface {
	return &TermSurface{w: w, title: title}
}

// EnableMarkdown routes bot messages through a terminal markdown renderer,
// so advisor replies with headings, lists and tables come out readable.
// Rendering failures fall back to plain styled text.
func (s *TermSurface) EnableMarkdown() {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(80),
		glamour.WithEmoji(),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		logger().Infow("markdown renderer init fail", "err", err)
		return
	}
	s.mu.Lock()
	s.md = r
	s.mu.Unlock()
}

func (s *TermSurface) Push(class, text string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.items = append(s.items, surfaceItem{h: s.seq, class: class, text: text})
	s.paint()
	return s.seq
}

func (s *TermSurface) Remove(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.h == h {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.paint()
			return
		}
	}
}

func (s *TermSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items[:0]
	s.paint()
}

// paint redraws the whole frame. Caller holds the lock.
func (s *TermSurface) paint() {
	var b strings.Builder
	b.WriteString("\x1b[2J\x1b[H") // clear screen, cursor home
	if s.title != "" {
		b.WriteString(titleStyle.Render(s.title))
		b.WriteByte('\n')
	}
	for _, it := range s.items {
		if it.class == ClassBot && s.md != nil {
			if out, err := s.md.Render(it.text); err == nil {
				b.WriteString(out)
				continue
			}
		}
		style, ok := termStyles[it.class]
		if !ok {
			style = lipgloss.NewStyle()
		}
		for _, line := range strings.Split(it.text, "\n") {
			b.WriteString(style.Render(line))
			b.WriteByte('\n')
		}
	}
	fmt.Fprint(s.w, b.String())
}
