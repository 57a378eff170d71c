// Package journal aggregates commodity deliveries from Elite Dangerous
// journal logs. Selling at a construction site's market is recorded as a
// MarketSell event, which is the proxy for a delivery.
package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/djglass/ed-colony-construction-tracker/internal/commodity"
)

// MarketSellEvent is the journal event type marking a sell transaction.
const MarketSellEvent = "MarketSell"

const (
	filePrefix = "Journal"
	fileSuffix = ".log"
)

// Journal lines are normally short JSON objects, but loadout and scan events
// can run long; size the line buffer well past anything the game writes.
const maxLineBytes = 1 << 20

// marketSellEntry is the subset of a MarketSell record the tracker consumes.
type marketSellEntry struct {
	Event string `json:"event"`
	Type  string `json:"Type"`
	Count int    `json:"Count"`
}

// Scanner reads a journal directory and tallies deliveries. Every Scan is a
// full rebuild over all files; nothing is carried between calls.
type Scanner struct {
	dir string
	log *zap.Logger
}

func NewScanner(dir string, log *zap.Logger) *Scanner {
	return &Scanner{dir: dir, log: log}
}

// Dir returns the directory this scanner reads.
func (s *Scanner) Dir() string { return s.dir }

// IsJournalFile reports whether a file name looks like a journal log.
func IsJournalFile(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix)
}

// Scan reads every journal file in the directory and sums MarketSell counts
// per normalized commodity. A missing directory or an empty one yields an
// empty map, not an error. Lines that fail to parse are skipped: journals are
// append-only and the last line may be a partial write.
func (s *Scanner) Scan(ctx context.Context) (map[commodity.Name]int, error) {
	deliveries := make(map[commodity.Name]int)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("journal directory missing, treating as empty",
				zap.String("dir", s.dir))
			return deliveries, nil
		}
		return nil, fmt.Errorf("read journal directory %s: %w", s.dir, err)
	}

	files := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !IsJournalFile(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := s.scanFile(path, deliveries); err != nil {
			// One unreadable file should not hide deliveries recorded in the
			// others.
			s.log.Warn("skipping unreadable journal file",
				zap.String("path", path), zap.Error(err))
			continue
		}
		files++
	}

	s.log.Debug("journal scan complete",
		zap.String("dir", s.dir),
		zap.Int("files", files),
		zap.Int("commodities", len(deliveries)))
	return deliveries, nil
}

func (s *Scanner) scanFile(path string, deliveries map[commodity.Name]int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		// Cheap pre-filter before unmarshalling; the overwhelming majority
		// of journal lines are other event types.
		if !strings.Contains(string(line), `"event":"`+MarketSellEvent+`"`) {
			continue
		}
		var entry marketSellEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entry.Event != MarketSellEvent || entry.Type == "" {
			continue
		}
		deliveries[commodity.Normalize(entry.Type)] += entry.Count
	}
	return scanner.Err()
}
