// Package chunk splits file lists so each command invocation stays under the
// operating system's argument length limit.
package chunk

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// Files normalizes files and splits them into contiguous chunks.
//
// Each path is resolved against baseDir unless relative is set or baseDir is
// empty. When maxArgLength is 0 all files are returned as a single chunk.
// Otherwise the number of chunks is the joined length divided by maxArgLength,
// rounded up and capped at the file count. Chunks are balanced by file count,
// so one chunk may exceed maxArgLength by up to one file's length.
func Files(files []string, baseDir string, relative bool, maxArgLength int) [][]string {
	normalized := make([]string, len(files))
	for i, f := range files {
		if !relative && baseDir != "" && !filepath.IsAbs(f) {
			f = filepath.Join(baseDir, f)
		}
		normalized[i] = filepath.ToSlash(f)
	}

	if maxArgLength <= 0 {
		slog.Debug("skip chunking files because maxArgLength is unset")
		return [][]string{normalized}
	}

	length := len(strings.Join(normalized, " "))
	chunkCount := min(ceilDiv(length, maxArgLength), len(normalized))
	slog.Debug("chunking files",
		"arg_length", length,
		"files", len(normalized),
		"max_arg_length", maxArgLength,
		"chunks", chunkCount)

	return split(normalized, chunkCount)
}

// split partitions items into n contiguous slices. At step i the next slice
// takes ceil(remaining / (n - i)) items.
func split(items []string, n int) [][]string {
	if n <= 1 {
		return [][]string{items}
	}

	chunks := make([][]string, 0, n)
	pos := 0
	for i := range n {
		size := ceilDiv(len(items)-pos, n-i)
		chunks = append(chunks, items[pos:pos+size])
		pos += size
	}
	return chunks
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
