package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"apexlog/internal/tree"
)

// Current schema version - increment when the Summary format changes.
const cacheSchemaVersion uint16 = 1

// Digest keys the cache: the sha256 of a log's content.
type Digest [sha256.Size]byte

// Summary is the cached shape of one analyzed log: enough for directory
// listings without re-parsing an unchanged file. The full tree is never
// cached, it rebuilds faster than it deserializes.
type Summary struct {
	Schema uint16 `msgpack:"schema" json:"-"`

	Path     string `msgpack:"path" json:"path"`
	Size     int64  `msgpack:"size" json:"size"`
	Duration int64  `msgpack:"duration" json:"duration"`

	EventCount  uint32 `msgpack:"events" json:"event_count"`
	MaxDepth    uint32 `msgpack:"depth" json:"max_depth"`
	IssueCount  uint32 `msgpack:"issues" json:"issue_count"`
	ParseErrors uint32 `msgpack:"parse_errors" json:"parse_errors"`

	SOQLQueries   int64 `msgpack:"soql" json:"soql_queries"`
	DMLStatements int64 `msgpack:"dml" json:"dml_statements"`
	Thrown        int64 `msgpack:"thrown" json:"thrown"`

	Truncated  bool     `msgpack:"truncated" json:"truncated"`
	Namespaces []string `msgpack:"namespaces" json:"namespaces,omitempty"`
}

// Summarize reduces a trace to its cached summary.
func Summarize(path string, tr *tree.Trace) (*Summary, error) {
	events, err := safecast.Conv[uint32](tree.Count(tr.Children))
	if err != nil {
		return nil, fmt.Errorf("event count overflow: %w", err)
	}
	depth, err := safecast.Conv[uint32](tree.MaxDepth(tr.Children))
	if err != nil {
		return nil, fmt.Errorf("depth overflow: %w", err)
	}
	issues, err := safecast.Conv[uint32](tr.Issues.Len())
	if err != nil {
		return nil, fmt.Errorf("issue count overflow: %w", err)
	}
	parseErrors, err := safecast.Conv[uint32](len(tr.ParseErrors))
	if err != nil {
		return nil, fmt.Errorf("parse error count overflow: %w", err)
	}

	s := &Summary{
		Schema:      cacheSchemaVersion,
		Path:        path,
		Size:        tr.Size,
		Duration:    tr.TotalDuration(),
		EventCount:  events,
		MaxDepth:    depth,
		IssueCount:  issues,
		ParseErrors: parseErrors,
		Truncated:   tr.Truncated(),
		Namespaces:  tr.NamespaceList(),
	}
	for _, root := range tr.Children {
		s.SOQLQueries += root.SOQLCount.Total
		s.DMLStatements += root.DMLCount.Total
		s.Thrown += root.ThrownCount
	}
	return s, nil
}

// Cache хранит сводки разобранных логов по хэшу содержимого на диске.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache initializes and returns a disk cache at the standard location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir reports where the cache lives on disk.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "sums".
	return filepath.Join(c.dir, "sums", hexKey+".mp")
}

// Put serializes and writes a summary to the disk cache.
func (c *Cache) Put(key Digest, s *Summary) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a summary from the disk cache. A missing entry and a schema
// mismatch both report a clean miss.
func (c *Cache) Get(key Digest, out *Summary) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим целиком
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
