// Package queue tracks which source videos still need a blog post. The queue
// is a CSV file with a url and a processed column.
package queue

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"

	"jamesfarrell.me/youtube-to-blog/internal/fsutil"
)

var ErrNotQueued = errors.New("url is not in the queue")

const (
	colURL       = "url"
	colProcessed = "processed"
)

type Queue struct {
	path string
	lock *flock.Flock
}

func New(path string) *Queue {
	return &Queue{path: path, lock: flock.New(path + ".lock")}
}

func (q *Queue) Path() string { return q.path }

// Pending returns the URLs not yet marked processed, in file order.
func (q *Queue) Pending() ([]string, error) {
	if err := q.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock queue: %w", err)
	}
	defer q.lock.Unlock()

	t, err := q.read()
	if err != nil {
		return nil, err
	}
	var urls []string
	for _, row := range t.rows {
		url := strings.TrimSpace(t.get(row, colURL))
		if url == "" || strings.EqualFold(strings.TrimSpace(t.get(row, colProcessed)), "true") {
			continue
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// MarkProcessed sets processed=True on every row holding url.
func (q *Queue) MarkProcessed(url string) error {
	if err := q.lock.Lock(); err != nil {
		return fmt.Errorf("lock queue: %w", err)
	}
	defer q.lock.Unlock()

	t, err := q.read()
	if err != nil {
		return err
	}
	procIdx := t.ensureColumn(colProcessed)
	found := false
	for _, row := range t.rows {
		if strings.TrimSpace(t.get(row, colURL)) == url {
			row[procIdx] = "True"
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotQueued, url)
	}
	return q.write(t)
}

type table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func (t *table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *table) ensureColumn(col string) int {
	if i, ok := t.index[col]; ok {
		for r := range t.rows {
			for len(t.rows[r]) <= i {
				t.rows[r] = append(t.rows[r], "")
			}
		}
		return i
	}
	t.header = append(t.header, col)
	i := len(t.header) - 1
	t.index[col] = i
	for r := range t.rows {
		for len(t.rows[r]) <= i {
			t.rows[r] = append(t.rows[r], "")
		}
	}
	return i
}

func (q *Queue) read() (*table, error) {
	f, err := os.Open(q.path)
	if err != nil {
		return nil, fmt.Errorf("open queue: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse queue %s: %w", q.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("queue %s has no header", q.path)
	}

	t := &table{header: records[0], index: map[string]int{}, rows: records[1:]}
	for i, name := range t.header {
		t.index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := t.index[colURL]; !ok {
		return nil, fmt.Errorf("queue %s has no %q column", q.path, colURL)
	}
	return t, nil
}

func (q *Queue) write(t *table) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.header); err != nil {
		return err
	}
	if err := w.WriteAll(t.rows); err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}
	return fsutil.WriteFileAtomic(q.path, buf.Bytes(), 0o644)
}

// ReadURLFile reads one URL per line, skipping blank lines.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	return urls, nil
}
