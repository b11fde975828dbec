package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// fieldsPerEntity is the number of significant lines describing one entity.
const fieldsPerEntity = 3

type textLine struct {
	no   int
	text string
}

// readText parses the line-oriented format: the first significant line holds the
// entity count, followed by name/primary/secondary lines per entity. Blank lines and
// lines starting with '#' are ignored. Leftover lines are rejected.
func readText(r io.Reader, source string) ([]Record, error) {
	var lines []textLine
	sc := bufio.NewScanner(r)
	no := 0
	for sc.Scan() {
		no++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, textLine{no: no, text: s})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	if len(lines) == 0 {
		return nil, malformed(source, 0, -1, "missing entity count")
	}
	count, err := strconv.Atoi(lines[0].text)
	if err != nil || count < 0 {
		return nil, malformed(source, lines[0].no, -1, "entity count %q is not a non-negative integer", lines[0].text)
	}

	body := lines[1:]
	recs := make([]Record, 0, min(count, len(body)/fieldsPerEntity))
	for i := 0; i < count; i++ {
		start := i * fieldsPerEntity
		if start+fieldsPerEntity > len(body) {
			last := lines[len(lines)-1].no
			return nil, malformed(source, last, i, "expected %d lines, found %d", fieldsPerEntity, len(body)-start)
		}
		group := body[start : start+fieldsPerEntity]
		recs = append(recs, Record{
			Line:      group[0].no,
			Name:      group[0].text,
			Primary:   group[1].text,
			Secondary: group[2].text,
		})
	}

	if extra := body[count*fieldsPerEntity:]; len(extra) > 0 {
		return nil, malformed(source, extra[0].no, -1, "unexpected line after %d declared entities", count)
	}
	return recs, nil
}
