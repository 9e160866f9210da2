package views

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pickgrip/internal/domain"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func testItems(names ...string) []*domain.Item {
	out := make([]*domain.Item, len(names))
	for i, n := range names {
		out[i] = domain.NewItem(n, n, "file")
	}
	return out
}

func TestRenderEmptyList(t *testing.T) {
	r := NewRenderer(NewStyles())
	assert.Equal(t, "No items", plain(r.RenderList(nil, ListOptions{Height: 5})))
}

func TestRenderMarksSelectedItem(t *testing.T) {
	r := NewRenderer(NewStyles())
	items := testItems("a", "b")
	items[1].ToggleClass("selected", true)

	out := plain(r.RenderList(items, ListOptions{Height: 5, ShowIndex: true, SelectedClass: "selected"}))
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"  0 a", "› 1 b"}, lines)
}

func TestRenderWindowWithScrollIndicators(t *testing.T) {
	r := NewRenderer(NewStyles())
	items := testItems("a", "b", "c", "d", "e")

	out := plain(r.RenderList(items, ListOptions{Offset: 1, Height: 2}))
	assert.Equal(t, []string{"↑ 1 more", "  b", "  c", "↓ 2 more"}, strings.Split(out, "\n"))
}

func TestRenderDirectoriesAndPaths(t *testing.T) {
	r := NewRenderer(NewStyles())
	dir := domain.NewItem("cmd", "cmd", "dir")
	nested := domain.NewItem("main.go", "cmd/main.go", "file")

	out := plain(r.RenderList([]*domain.Item{dir, nested}, ListOptions{Height: 5}))
	assert.Equal(t, []string{"  cmd/", "  main.go cmd/main.go"}, strings.Split(out, "\n"))
}
