// extract.go pulls the rg executable out of a release archive.
//
// Design: extraction is done in-process with archive/tar and archive/zip
// rather than shelling out to tar or unzip, which are not guaranteed to
// exist (Windows, minimal containers). Only the single entry whose base name
// equals the member is written; every other entry is skipped, so archive
// paths never influence where bytes land on disk.

package ripgrep

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
)

// errMemberMissing is returned when the archive has no entry named member.
var errMemberMissing = errors.New("executable not found in archive")

// maxBinarySize caps the bytes copied out of an archive entry.
const maxBinarySize = 256 << 20

// extract writes member from archive (of format ext) to dst with mode 0755.
func extract(archive, ext, member, dst string) error {
	switch ext {
	case TarGz:
		return extractTarGz(archive, member, dst)
	case Zip:
		return extractZip(archive, member, dst)
	default:
		return fmt.Errorf("unknown archive format %q", ext)
	}
}

func extractTarGz(archive, member, dst string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return fmt.Errorf("%w: %s", errMemberMissing, member)
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || path.Base(hdr.Name) != member {
			continue
		}
		return writeExecutable(tr, dst)
	}
}

func extractZip(archive, member, dst string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || path.Base(zf.Name) != member {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", zf.Name, err)
		}
		defer rc.Close()
		return writeExecutable(rc, dst)
	}
	return fmt.Errorf("%w: %s", errMemberMissing, member)
}

// writeExecutable copies r into a temp file beside dst, marks it executable
// and renames it over dst.
func writeExecutable(r io.Reader, dst string) error {
	tmp := perProcessTempfile(dst)
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if _, err := io.Copy(f, io.LimitReader(r, maxBinarySize)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if runtime.GOOS != "windows" {
		// Umask may have stripped bits at create time.
		if err := os.Chmod(tmp, 0o755); err != nil {
			return err
		}
	}
	return os.Rename(tmp, dst)
}
