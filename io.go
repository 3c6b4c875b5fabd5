package iccgen

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

type tempFile interface {
	io.WriteCloser
	Name() string
}

type fileSystem interface {
	CreateTemp(dir, pattern string) (tempFile, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	Open(string) (io.ReadCloser, error)
}

type localFS struct{}

func (localFS) CreateTemp(dir, pattern string) (tempFile, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	// the mode os.Create would use, os.CreateTemp uses 0600
	if err = f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	return f, nil
}

func (localFS) Rename(oldpath, newpath string) error    { return os.Rename(oldpath, newpath) }
func (localFS) Remove(name string) error                { return os.Remove(name) }
func (localFS) Open(name string) (io.ReadCloser, error) { return os.Open(name) }

var fs fileSystem = localFS{}

// WriteFile writes a serialized profile to filename. The data goes to a
// temporary file in the same directory which is renamed over filename only
// once it is completely written and closed, so on failure filename is left
// as it was and the temporary file is removed. Errors from the operating
// system are returned as is.
//
// Example:
//
//	data, err := iccgen.BuildAndSerialize(in)
//	if err == nil {
//		err = iccgen.WriteFile("DisplayP3.icc", data)
//	}
func WriteFile(filename string, data []byte) (err error) {
	file, err := fs.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := file.Name()
	defer func() {
		if err != nil {
			fs.Remove(tmp)
		}
	}()
	_, err = file.Write(data)
	errc := file.Close()
	if err == nil {
		err = errc
	}
	if err == nil {
		err = fs.Rename(tmp, filename)
	}
	if err == nil {
		log.WithFields(log.Fields{"path": filename, "size": len(data)}).Debug("wrote profile")
	}
	return err
}
