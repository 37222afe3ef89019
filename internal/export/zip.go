package export

import (
	"archive/zip"
	"fmt"
	"io"
	"time"
)

// WriteZIP bundles each table as {name}.csv inside one archive.
func WriteZIP(w io.Writer, modified time.Time, tables ...*Table) error {
	zw := zip.NewWriter(w)
	for _, t := range tables {
		hdr := &zip.FileHeader{
			Name:     SanitizeFilename(t.Name) + ".csv",
			Method:   zip.Deflate,
			Modified: modified,
		}
		entry, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("adding %s: %w", hdr.Name, err)
		}
		if err := WriteCSV(entry, t); err != nil {
			return fmt.Errorf("writing %s: %w", hdr.Name, err)
		}
	}
	return zw.Close()
}
