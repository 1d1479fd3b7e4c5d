package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"despawn-particles/internal/utils"
)

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Package is an opened PKGV archive. Entries can be read in place without
// extracting.
type Package struct {
	Version string
	Entries []FileEntry

	r         io.ReaderAt
	dataStart int64
	byName    map[string]int
}

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPackage parses the archive index from r.
func ReadPackage(r io.ReadSeeker) (*Package, error) {
	version, err := readPkgString(r)
	if err != nil {
		return nil, fmt.Errorf("pkg: version: %w", err)
	}

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return nil, fmt.Errorf("pkg: file count: %w", err)
	}

	p := &Package{Version: version, byName: make(map[string]int, fileCount)}
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return nil, fmt.Errorf("pkg: entry %d: %w", i, err)
		}
		var offset, size uint32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, err
		}
		p.byName[name] = len(p.Entries)
		p.Entries = append(p.Entries, FileEntry{Name: name, Offset: offset, Size: size})
	}

	p.dataStart, err = r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	ra, ok := r.(io.ReaderAt)
	if !ok {
		return nil, fmt.Errorf("pkg: reader does not support ReadAt")
	}
	p.r = ra
	utils.Debug("pkg: version %s, %d files", version, fileCount)
	return p, nil
}

// Open returns a reader over one entry.
func (p *Package) Open(name string) (*io.SectionReader, error) {
	i, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("pkg: %s: %w", name, os.ErrNotExist)
	}
	e := p.Entries[i]
	return io.NewSectionReader(p.r, p.dataStart+int64(e.Offset), int64(e.Size)), nil
}

// Names lists entries with the given suffix, sorted.
func (p *Package) Names(suffix string) []string {
	var out []string
	for _, e := range p.Entries {
		if strings.HasSuffix(e.Name, suffix) {
			out = append(out, e.Name)
		}
	}
	sort.Strings(out)
	return out
}

// Extract writes every entry under outputDir.
func (p *Package) Extract(outputDir string) error {
	for i, e := range p.Entries {
		if i%10 == 0 || i == len(p.Entries)-1 {
			utils.Debug("pkg: extracting %d/%d: %s", i+1, len(p.Entries), e.Name)
		}
		dest := filepath.Join(outputDir, filepath.FromSlash(e.Name))
		if !strings.HasPrefix(dest, filepath.Clean(outputDir)+string(os.PathSeparator)) {
			return fmt.Errorf("pkg: entry %q escapes output dir", e.Name)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		src, err := p.Open(e.Name)
		if err != nil {
			return err
		}
		out, err := os.Create(dest)
		if err != nil {
			return err
		}
		_, err = io.Copy(out, src)
		out.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// ConvertTextures decodes every .tex under root into PNGs in outDir, with
// bounded parallelism. It returns the number converted.
func ConvertTextures(root, outDir string) int {
	var converted int32
	var wg sync.WaitGroup

	const maxConcurrency = 10
	sem := make(chan struct{}, maxConcurrency)

	if outDir != "" {
		CacheDir = outDir
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			utils.Error("Failed to create %s: %v", outDir, err)
			return 0
		}
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(path, ".tex") {
			return nil
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(p string) {
			defer wg.Done()
			defer func() { <-sem }()
			if _, err := LoadImage(p); err != nil {
				utils.Error("Failed to convert %s: %v", p, err)
				return
			}
			atomic.AddInt32(&converted, 1)
		}(path)
		return nil
	})
	if err != nil {
		utils.Error("Error walking %s: %v", root, err)
	}

	wg.Wait()
	utils.Info("Converted %d textures", converted)
	return int(converted)
}
