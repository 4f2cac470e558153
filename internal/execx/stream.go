package execx

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PrefixWriter adds a prefix to each complete line of output. Loom
// uses it in verbose mode so external tool output stays visually
// separate from its own messages.
type PrefixWriter struct {
	prefix string
	writer io.Writer
	buffer []byte
}

// NewPrefixWriter creates a writer that prefixes each line.
func NewPrefixWriter(writer io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{
		prefix: prefix,
		writer: writer,
	}
}

// Write buffers partial lines and emits complete ones with the prefix.
func (p *PrefixWriter) Write(data []byte) (int, error) {
	p.buffer = append(p.buffer, data...)

	for {
		idx := strings.IndexByte(string(p.buffer), '\n')
		if idx < 0 {
			break
		}
		line := string(p.buffer[:idx])
		p.buffer = p.buffer[idx+1:]
		if _, err := p.writer.Write([]byte(p.prefix + line + "\n")); err != nil {
			return 0, err
		}
	}

	return len(data), nil
}

// Flush writes any trailing line that never received a newline.
func (p *PrefixWriter) Flush() error {
	if len(p.buffer) == 0 {
		return nil
	}
	_, err := p.writer.Write([]byte(p.prefix + string(p.buffer) + "\n"))
	p.buffer = p.buffer[:0]
	return err
}

// StyledWriter is a PrefixWriter that also colors each line. Used for
// external tool stderr so warnings from npm and friends stay visually
// distinct from Loom's own messages.
type StyledWriter struct {
	inner *PrefixWriter
}

// NewStyledWriter creates a prefixing writer that renders lines in the
// given color.
func NewStyledWriter(writer io.Writer, prefix string, color lipgloss.Color) *StyledWriter {
	style := lipgloss.NewStyle().Foreground(color)
	return &StyledWriter{
		inner: &PrefixWriter{
			prefix: prefix,
			writer: &styleSink{writer: writer, style: style},
		},
	}
}

// Write forwards to the underlying prefixing writer.
func (s *StyledWriter) Write(p []byte) (int, error) {
	return s.inner.Write(p)
}

// Flush writes any trailing partial line.
func (s *StyledWriter) Flush() error {
	return s.inner.Flush()
}

// styleSink renders each write through a lipgloss style.
type styleSink struct {
	writer io.Writer
	style  lipgloss.Style
}

func (s *styleSink) Write(p []byte) (int, error) {
	line := strings.TrimSuffix(string(p), "\n")
	if _, err := s.writer.Write([]byte(s.style.Render(line) + "\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}
