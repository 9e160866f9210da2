package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"pickgrip/internal/domain"
	"pickgrip/internal/eventbus"
)

// Scanner lists the selectable entries below a directory
type Scanner struct {
	Root       string
	Pattern    string   // glob matched against base names, empty matches everything
	Exclude    []string // base names skipped entirely
	MaxDepth   int      // 1 lists only direct children
	ShowHidden bool
}

// Scan walks the directory and returns the matching entries sorted by path
func (s Scanner) Scan(ctx context.Context) ([]*domain.Item, error) {
	if s.Pattern != "" {
		if _, err := filepath.Match(s.Pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", s.Pattern, err)
		}
	}
	maxDepth := s.MaxDepth
	if maxDepth < 1 {
		maxDepth = 1
	}
	excluded := make(map[string]bool, len(s.Exclude))
	for _, name := range s.Exclude {
		excluded[name] = true
	}

	var items []*domain.Item
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == s.Root {
				return err
			}
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}
		if path == s.Root {
			return nil
		}

		name := d.Name()
		if excluded[name] || (!s.ShowHidden && strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(s.Root, path)
		depth := strings.Count(relPath, string(filepath.Separator)) + 1

		if s.matches(name) {
			items = append(items, newItem(relPath, d))
		}

		if d.IsDir() && depth >= maxDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

func (s Scanner) matches(name string) bool {
	if s.Pattern == "" {
		return true
	}
	ok, _ := filepath.Match(s.Pattern, name)
	return ok
}

func newItem(relPath string, d fs.DirEntry) *domain.Item {
	kind := "file"
	switch {
	case d.Type()&fs.ModeSymlink != 0:
		kind = "symlink"
	case d.IsDir():
		kind = "dir"
	}

	item := domain.NewItem(d.Name(), filepath.ToSlash(relPath), kind)
	if ext := filepath.Ext(d.Name()); ext != "" && kind != "dir" {
		item.SetAttr("ext", ext)
	}

	info, err := d.Info()
	if err != nil {
		return item
	}
	item.SetAttr("mode", info.Mode().String())
	item.SetAttr("modified", info.ModTime().UTC().Format(time.RFC3339))
	if kind == "file" {
		item.SetAttr("size", strconv.FormatInt(info.Size(), 10))
	}
	if info.Mode().Perm()&0o400 == 0 {
		item.SetAttr("disabled", "")
	}
	return item
}

// DiscoveryService runs scans in the background and publishes the results
type DiscoveryService interface {
	StartScan(ctx context.Context, root string) error
	StopScan()
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	scanner    Scanner
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// ErrScanInProgress is returned when a scan is requested while one runs
var ErrScanInProgress = errors.New("scan already in progress")

// NewDiscoveryService creates a new discovery service. A ScanRequestedEvent
// with an empty root rescans the scanner's root
func NewDiscoveryService(bus eventbus.EventBus, scanner Scanner) DiscoveryService {
	ds := &discoveryService{
		bus:     bus,
		scanner: scanner,
	}

	bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(domain.ScanRequestedEvent); ok {
			root := event.Root
			if root == "" {
				root = scanner.Root
			}
			if err := ds.StartScan(context.Background(), root); err != nil {
				log.Printf("Scan request ignored: %v", err)
			}
		}
	})

	return ds
}

// StartScan starts scanning root in the background
func (ds *discoveryService) StartScan(ctx context.Context, root string) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return ErrScanInProgress
	}
	ds.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.wg.Add(1)
	ds.mu.Unlock()

	ds.bus.Publish(domain.ScanStartedEvent{Root: root})

	go func() {
		defer ds.wg.Done()
		found := 0
		defer func() {
			cancel()
			ds.mu.Lock()
			ds.isScanning = false
			ds.cancelFunc = nil
			ds.mu.Unlock()

			ds.bus.Publish(domain.ScanCompletedEvent{Root: root, ItemsFound: found})
		}()

		scanner := ds.scanner
		scanner.Root = root
		items, err := scanner.Scan(scanCtx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("Error scanning directory %s: %v", root, err)
			ds.bus.Publish(domain.ErrorEvent{
				Message: fmt.Sprintf("Failed to scan %s", root),
				Err:     err,
			})
			return
		}

		found = len(items)
		log.Printf("Scan of %s found %d items", root, found)
		ds.bus.Publish(domain.ItemsDiscoveredEvent{Source: root, Items: items})
	}()

	return nil
}

// StopScan stops any ongoing scan
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

// Stat reports whether root is a directory that can be scanned
func Stat(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot scan %s: not a directory", root)
	}
	return nil
}
