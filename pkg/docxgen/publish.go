package docxgen

import (
	"context"
	"os"
	"path/filepath"
)

// publish atomically replaces dest with data. The bytes go to a temporary file in the
// same directory, which is synced and renamed over dest, so readers observe either the
// previous file or the complete new one. The temporary file is removed on failure.
func publish(ctx context.Context, dest string, data []byte, mode os.FileMode) (err error) {
	if err := ctx.Err(); err != nil {
		return newError(IOError, "publish", dest, err, "render cancelled before publishing")
	}

	dir, base := filepath.Split(dest)
	if base == "" {
		return newError(IOError, "publish", dest, nil, "destination is a directory")
	}
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return newError(IOError, "publish", dest, err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return newError(IOError, "publish", dest, err, "failed to write temporary file")
	}
	if err = tmp.Sync(); err != nil {
		return newError(IOError, "publish", dest, err, "failed to sync temporary file")
	}
	if err = tmp.Chmod(mode); err != nil {
		return newError(IOError, "publish", dest, err, "failed to set file mode")
	}
	if err = tmp.Close(); err != nil {
		return newError(IOError, "publish", dest, err, "failed to close temporary file")
	}
	if err = os.Rename(tmpName, dest); err != nil {
		return newError(IOError, "publish", dest, err, "failed to replace destination")
	}

	// The rename is durable only once the directory entry is flushed. Some platforms
	// cannot sync a directory; the file itself is already in place by then.
	if d, derr := os.Open(dir); derr == nil {
		d.Sync()
		d.Close()
	}
	return nil
}
