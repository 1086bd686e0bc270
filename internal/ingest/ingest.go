// Package ingest turns a path on disk into the []reference.Named batch the
// rest of the pipeline works on.
package ingest

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/flier/rlz/internal/normalize"
	"github.com/flier/rlz/pkg/reference"
)

// File reads path one line per input sequence, naming each
// "<base name of path>:<line number>". Empty lines are skipped but still
// counted in the line numbers.
func File(path string) ([]reference.Named, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []reference.Named

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024*64)

	line := 0

	for scanner.Scan() {
		line++

		text := scanner.Text()
		if text == "" {
			continue
		}

		out = append(out, reference.Named{
			Name:  filepath.Base(path) + ":" + strconv.Itoa(line),
			Bytes: []byte(text),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Dir reads every regular file directly under dir as one input sequence.
// Any line starting with headerPrefix (e.g. a FASTA ">" header) is dropped
// first; the remaining newline/carriage-return characters are stripped and
// the rest of the file becomes a single sequence named after the file.
// headerPrefix == "" disables header stripping entirely.
func Dir(dir string, headerPrefix string) ([]reference.Named, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		names = append(names, e.Name())
	}

	sort.Strings(names)

	out := make([]reference.Named, 0, len(names))

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}

		data = normalize.StripLines(data, headerPrefix)

		stripped := strings.NewReplacer("\n", "", "\r", "").Replace(string(data))
		if stripped == "" {
			continue
		}

		out = append(out, reference.Named{Name: name, Bytes: []byte(stripped)})
	}

	return out, nil
}

