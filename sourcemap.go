package jsgen

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Mapping maps an output position to a source position, both with lines and columns starting at 1.
// A mapping without source has an empty path and zero line and column.
type Mapping struct {
	OutLine, OutCol int
	Path            string
	SrcLine, SrcCol int
}

func (m Mapping) String() string {
	return fmt.Sprintf("(%d,%d) -> (%s, %d, %d)", m.OutLine, m.OutCol, m.Path, m.SrcLine, m.SrcCol)
}

// SourceMap is the list of recorded mappings, it implements printer.Recorder.
type SourceMap struct {
	Mappings []Mapping
}

func (sm *SourceMap) RecordLocation(outLine, outCol int, path string, srcLine, srcCol int) {
	sm.Mappings = append(sm.Mappings, Mapping{outLine, outCol, path, srcLine, srcCol})
}

// WriteTo writes one mapping per line.
func (sm *SourceMap) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, m := range sm.Mappings {
		k, err := io.WriteString(w, m.String()+"\n")
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Annotate writes every mapping followed by the output line it points into.
func (sm *SourceMap) Annotate(w io.Writer, out string) error {
	for _, m := range sm.Mappings {
		if _, err := fmt.Fprintf(w, "%v\n%s\n", m, Context(out, m.OutLine, m.OutCol)); err != nil {
			return err
		}
	}
	return nil
}

// ReadSourceMap parses the format written by WriteTo.
func ReadSourceMap(r io.Reader) (*SourceMap, error) {
	sm := &SourceMap{}
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if text == "" {
			continue
		}
		m, err := parseMapping(text)
		if err != nil {
			return nil, fmt.Errorf("source map line %d: %w", line, err)
		}
		sm.Mappings = append(sm.Mappings, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sm, nil
}

func parseMapping(s string) (Mapping, error) {
	out, src, ok := strings.Cut(s, " -> ")
	if !ok || !isParenthesized(out) || !isParenthesized(src) {
		return Mapping{}, fmt.Errorf("malformed mapping %q", s)
	}
	outLine, outCol, ok := strings.Cut(out[1:len(out)-1], ",")
	if !ok {
		return Mapping{}, fmt.Errorf("malformed output position %q", out)
	}

	// the path may contain commas, so the source line and column are taken from the back
	src = src[1 : len(src)-1]
	i := strings.LastIndex(src, ", ")
	if i < 0 {
		return Mapping{}, fmt.Errorf("malformed source position %q", src)
	}
	srcCol := src[i+2:]
	src = src[:i]
	if i = strings.LastIndex(src, ", "); i < 0 {
		return Mapping{}, fmt.Errorf("malformed source position %q", src)
	}
	path, srcLine := src[:i], src[i+2:]

	var m Mapping
	var err error
	m.Path = path
	for _, field := range []struct {
		dst  *int
		text string
	}{{&m.OutLine, outLine}, {&m.OutCol, outCol}, {&m.SrcLine, srcLine}, {&m.SrcCol, srcCol}} {
		if *field.dst, err = strconv.Atoi(field.text); err != nil {
			return Mapping{}, fmt.Errorf("malformed number in %q: %w", s, err)
		}
	}
	return m, nil
}

func isParenthesized(s string) bool {
	return 2 <= len(s) && s[0] == '(' && s[len(s)-1] == ')'
}
