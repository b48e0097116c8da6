package util

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// ComicInfo is the subset of the ComicRack metadata schema readers pick up
// from a CBZ.
type ComicInfo struct {
	XMLName   xml.Name `xml:"ComicInfo"`
	Title     string   `xml:"Title,omitempty"`
	Series    string   `xml:"Series,omitempty"`
	Number    string   `xml:"Number,omitempty"`
	Writer    string   `xml:"Writer,omitempty"`
	Genre     string   `xml:"Genre,omitempty"`
	Summary   string   `xml:"Summary,omitempty"`
	Web       string   `xml:"Web,omitempty"`
	PageCount int      `xml:"PageCount,omitempty"`
}

// CreateCBZ zips files in name order into output. A non-nil info is written
// first as ComicInfo.xml. The archive is built in output+".part" and only
// renamed into place once complete.
func CreateCBZ(files []string, output string, info *ComicInfo) (err error) {
	part := output + ".part"
	if err := writeCBZ(files, part, info); err != nil {
		_ = os.Remove(part)
		return err
	}

	if err := os.Rename(part, output); err != nil {
		_ = os.Remove(part)
		return fmt.Errorf("cbz: %w", err)
	}

	return nil
}

func writeCBZ(files []string, output string, info *ComicInfo) (err error) {
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("cbz: %w", err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	z := zip.NewWriter(out)
	defer func() {
		err = errors.Join(err, z.Close())
	}()

	if info != nil {
		if info.PageCount == 0 {
			info.PageCount = len(files)
		}
		if err := addComicInfo(z, info); err != nil {
			return fmt.Errorf("cbz: comic info: %w", err)
		}
	}

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	for _, file := range sorted {
		if err := addFileToZip(z, file); err != nil {
			return fmt.Errorf("cbz: %s: %w", filepath.Base(file), err)
		}
	}

	return nil
}

func addComicInfo(z *zip.Writer, info *ComicInfo) error {
	w, err := z.Create("ComicInfo.xml")
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return enc.Encode(info)
}

func addFileToZip(z *zip.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(st)
	if err != nil {
		return err
	}
	header.Name = filepath.Base(file)
	header.Method = zip.Deflate

	w, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}
