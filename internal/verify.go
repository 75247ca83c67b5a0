package internal

import (
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// VerifyResult summarizes a generated corpus.
type VerifyResult struct {
	FolderPath       string         `json:"folder_path"`
	TotalFiles       int            `json:"total_files"`
	DistinctContents int            `json:"distinct_contents"`
	DuplicateFiles   int            `json:"duplicate_files"`
	InvalidFiles     []InvalidFile  `json:"invalid_files,omitempty"`
	Duplicates       []DuplicateSet `json:"duplicates,omitempty"`
}

// InvalidFile is a corpus entry that is not a truecolor PNG of the expected size.
type InvalidFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// DuplicateSet groups files with identical content.
type DuplicateSet struct {
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
}

// Verify hashes and decodes every top-level .png file in dir. Files whose
// dimensions differ from width x height, or that carry alpha or a palette,
// are reported as invalid.
func Verify(dir string, width, height int) (*VerifyResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	results := &VerifyResult{FolderPath: dir}
	hashes := make(map[string][]string)

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != imageExt {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		results.TotalFiles++

		hash, err := fileHash(path)
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s: %w", path, err)
		}
		hashes[hash] = append(hashes[hash], path)

		if reason := checkImage(path, width, height); reason != "" {
			results.InvalidFiles = append(results.InvalidFiles, InvalidFile{Path: path, Reason: reason})
		}
	}

	results.DistinctContents = len(hashes)
	results.DuplicateFiles = results.TotalFiles - results.DistinctContents
	results.Duplicates = findDuplicateSets(hashes)

	return results, nil
}

// checkImage returns an empty string when path is an opaque truecolor PNG of
// the given size, or a short reason otherwise.
func checkImage(path string, width, height int) string {
	f, err := os.Open(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()

	// Color type lives at byte 25 of a PNG: 8 signature + 8 chunk header + 9 IHDR bytes.
	header := make([]byte, 26)
	if _, err := io.ReadFull(f, header); err != nil {
		return "truncated file"
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err.Error()
	}

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return err.Error()
	}
	if cfg.Width != width || cfg.Height != height {
		return fmt.Sprintf("size %dx%d, want %dx%d", cfg.Width, cfg.Height, width, height)
	}
	if colorType := header[25]; colorType != 2 {
		return fmt.Sprintf("color type %d, want truecolor (2)", colorType)
	}
	return ""
}

// findDuplicateSets keeps only hashes shared by more than one file
func findDuplicateSets(hashes map[string][]string) []DuplicateSet {
	var duplicates []DuplicateSet
	for hash, files := range hashes {
		if len(files) > 1 {
			sort.Strings(files)
			duplicates = append(duplicates, DuplicateSet{
				Hash:  hash,
				Files: files,
			})
		}
	}
	sort.Slice(duplicates, func(i, j int) bool {
		if len(duplicates[i].Files) != len(duplicates[j].Files) {
			return len(duplicates[i].Files) > len(duplicates[j].Files)
		}
		return duplicates[i].Hash < duplicates[j].Hash
	})
	return duplicates
}

// DisplayVerify writes results as a table or as indented JSON.
func DisplayVerify(w io.Writer, results *VerifyResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "table", "":
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}

	fmt.Fprintf(w, "Corpus:            %s\n", results.FolderPath)
	fmt.Fprintf(w, "PNG files:         %d\n", results.TotalFiles)
	fmt.Fprintf(w, "Distinct contents: %d\n", results.DistinctContents)
	fmt.Fprintf(w, "Duplicate files:   %d\n", results.DuplicateFiles)
	fmt.Fprintf(w, "Invalid files:     %d\n", len(results.InvalidFiles))

	if len(results.Duplicates) > 0 {
		fmt.Fprintf(w, "\nDuplicate sets (%d):\n", len(results.Duplicates))
		for i, dup := range results.Duplicates[:min(5, len(results.Duplicates))] {
			fmt.Fprintf(w, "  %d. %s... (%d files)\n", i+1, dup.Hash[:12], len(dup.Files))
		}
		if len(results.Duplicates) > 5 {
			fmt.Fprintf(w, "  ... and %d more sets\n", len(results.Duplicates)-5)
		}
	}

	if len(results.InvalidFiles) > 0 {
		fmt.Fprintln(w, "\nInvalid files:")
		for _, inv := range results.InvalidFiles {
			fmt.Fprintf(w, "  %s: %s\n", filepath.Base(inv.Path), inv.Reason)
		}
	}

	return nil
}
