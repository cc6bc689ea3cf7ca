// Package source loads puzzle lines from where they are kept.
package source

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"crosswarped.com/segdecode"
)

// FromFile reads one puzzle per line. Blank lines and lines starting with '#'
// are skipped, but still counted so that line numbers match the file.
func FromFile(ctx context.Context, path string) ([]segdecode.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []segdecode.Line
	scanner := bufio.NewScanner(f)
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lines = append(lines, segdecode.Line{Number: number, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
