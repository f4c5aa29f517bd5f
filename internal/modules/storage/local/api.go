package local

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveWith creates path and lets write fill it. The file is always closed, and
// removed again when write or the close fails.
func SaveWith(path string, write func(w io.Writer) error) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(file)
}

func SaveFile(f io.Reader, path string) error {
	return SaveWith(path, func(w io.Writer) error {
		_, err := io.Copy(w, f)
		return err
	})
}

// FreePath returns dir/base.ext, or dir/base_N.ext with the smallest N >= 1 that
// does not exist yet.
func FreePath(dir, base, ext string) (string, error) {
	candidate := filepath.Join(dir, base+ext)
	for n := 1; ; n++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}
}
