// Package journal appends every produced verdict to a daily JSON-lines file.
package journal

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stock-verdict/internal/verdict"
)

var ist = time.FixedZone("IST", 19800)

// Entry is one journal line.
type Entry struct {
	Time        string   `json:"time"`
	RequestID   string   `json:"request_id"`
	Ticker      string   `json:"ticker"`
	Signal      string   `json:"signal"`
	Confidence  int      `json:"confidence"`
	Price       *float64 `json:"price,omitempty"`
	Sentiment   float64  `json:"sentiment"`
	Reasons     []string `json:"reasons"`
	Unavailable []string `json:"unavailable,omitempty"`
}

// Journal writes under dir/verdicts/YYYY-MM-DD.txt (IST dates).
type Journal struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

func New(dir string) *Journal {
	if dir == "" {
		dir = "logs"
	}
	return &Journal{dir: dir, now: time.Now}
}

func (j *Journal) path(t time.Time) string {
	return filepath.Join(j.dir, "verdicts", t.In(ist).Format("2006-01-02")+".txt")
}

// Record appends r as one line.
func (j *Journal) Record(r *verdict.Report) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().In(ist)
	e := Entry{
		Time:       now.Format("2006-01-02 15:04:05"),
		RequestID:  r.RequestID,
		Ticker:     r.Ticker,
		Signal:     string(r.Verdict.Signal),
		Confidence: r.Verdict.Confidence,
		Price:      r.Market.CurrentPrice,
		Sentiment:  r.Sentiment.OverallScore,
		Reasons:    r.Verdict.Reasons,
	}
	for source := range r.Unavailable {
		e.Unavailable = append(e.Unavailable, source)
	}

	p := j.path(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips journal files last modified more than retentionDays
// ago and removes the originals. Zero or negative retention is a no-op.
func (j *Journal) CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := j.now().AddDate(0, 0, -retentionDays)

	return filepath.WalkDir(j.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, err := os.Stat(gz); err == nil {
			_ = os.Remove(p)
			return nil
		}
		if err := gzipFile(p, gz); err != nil {
			return fmt.Errorf("compress %s: %w", p, err)
		}
		return os.Remove(p)
	})
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := gw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
