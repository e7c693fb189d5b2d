package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
)

// Reader provides access to the files of an EPUB archive held in memory.
type Reader struct {
	zr      *zip.Reader
	files   map[string]*zip.File
	opfPath string
}

// container.xml structure
type container struct {
	Rootfiles struct {
		Rootfile []struct {
			FullPath  string `xml:"full-path,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

var (
	ErrContainerNotFound = errors.New("META-INF/container.xml not found")
	ErrRootfileNotFound  = errors.New("no rootfile declared in container.xml")
)

// FormatError indicates the archive cannot be parsed at all. It is the only
// archive-level failure surfaced to the user; anything less is degraded
// around with a warning.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unreadable book archive: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewReader opens an EPUB archive from raw bytes and locates its OPF.
// A wrong or missing mimetype entry is tolerated with a warning; only an
// unreadable zip or a container without a rootfile yields a FormatError.
func NewReader(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	r := &Reader{
		zr:    zr,
		files: make(map[string]*zip.File),
	}
	for _, f := range zr.File {
		r.files[Normalize(f.Name)] = f
	}

	if mt, err := r.ReadFile("mimetype"); err != nil {
		log.Printf("warning: archive has no mimetype entry")
	} else if string(mt) != "application/epub+zip" {
		log.Printf("warning: unexpected mimetype %q", string(mt))
	}

	if err := r.parseContainer(); err != nil {
		return nil, &FormatError{Err: err}
	}

	return r, nil
}

// OPFPath returns the archive path of the package document.
func (r *Reader) OPFPath() string {
	return r.opfPath
}

// Has reports whether the archive contains the given path.
func (r *Reader) Has(path string) bool {
	_, ok := r.files[Normalize(path)]
	return ok
}

// ReadFile reads the contents of a file from the archive.
func (r *Reader) ReadFile(path string) ([]byte, error) {
	f, ok := r.files[Normalize(path)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// parseContainer parses META-INF/container.xml to find the OPF path.
func (r *Reader) parseContainer() error {
	content, err := r.ReadFile("META-INF/container.xml")
	if err != nil {
		return ErrContainerNotFound
	}

	var c container
	if err := xml.Unmarshal(content, &c); err != nil {
		return fmt.Errorf("failed to parse container.xml: %w", err)
	}

	for _, rf := range c.Rootfiles.Rootfile {
		if rf.MediaType == "application/oebps-package+xml" || rf.MediaType == "" {
			r.opfPath = Normalize(rf.FullPath)
			return nil
		}
	}
	if len(c.Rootfiles.Rootfile) > 0 {
		r.opfPath = Normalize(c.Rootfiles.Rootfile[0].FullPath)
		return nil
	}

	return ErrRootfileNotFound
}
