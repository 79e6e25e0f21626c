package fetch

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flowvibe/mcp-installer/internal/perms"
)

// ExtractTarGz extracts the gzip-compressed tarball at src into dest,
// dropping the first strip path components of every entry (like 'tar --strip-components').
// Entries that would escape dest are rejected. Only regular files and directories are written.
func ExtractTarGz(src string, dest string, strip int) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return err
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		name := stripComponents(hdr.Name, strip)
		if name == "" {
			continue
		}

		target := filepath.Join(destAbs, filepath.FromSlash(name))
		if target != destAbs && !strings.HasPrefix(target, destAbs+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry '%s' escapes the target directory", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, perms.RegularDir); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		}
	}
}

// stripComponents removes the first n slash-separated components of name.
func stripComponents(name string, n int) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	parts := strings.Split(name, "/")
	if len(parts) <= n {
		return ""
	}
	return strings.Trim(strings.Join(parts[n:], "/"), "/")
}

func writeFile(path string, r io.Reader, mode os.FileMode) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), perms.RegularDir); err != nil {
		return err
	}

	// Owner must be able to write, so uninstall can remove the file later.
	mode |= 0o600

	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	_, err = io.Copy(out, r)
	return err
}
