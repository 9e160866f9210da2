package discovery

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pickgrip/internal/domain"
)

// ReadLines reads one item per non-blank line. A line is a label optionally
// followed by tab-separated key=value attributes:
//
//	staging<TAB>region=eu<TAB>disabled
func ReadLines(r io.Reader) ([]*domain.Item, error) {
	var items []*domain.Item
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		label := strings.TrimSpace(fields[0])
		item := domain.NewItem(label, strconv.Itoa(line), "line")
		for _, f := range fields[1:] {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			key, value, _ := strings.Cut(f, "=")
			item.SetAttr(key, value)
		}
		items = append(items, item)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}
