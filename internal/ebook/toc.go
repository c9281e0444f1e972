package ebook

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     navLabel   `xml:"navLabel"`
	Content   navContent `xml:"content"`
	Children  []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// hrefTitleMap parses the NCX and maps content hrefs (full, fragment-free
// and basename forms) to their TOC labels. A book without an NCX yields an
// empty map, which flattens it into a single untitled chapter.
func hrefTitleMap(filename string, pkg *epub.Rootfile) map[string]string {
	ncxData, err := findAndReadNCX(filename, pkg)
	if err != nil {
		return map[string]string{}
	}

	var toc ncx
	if err := xml.Unmarshal(ncxData, &toc); err != nil {
		return map[string]string{}
	}
	return navPointsToHrefMap(toc.NavMap.NavPoints)
}

func navPointsToHrefMap(points []navPoint) map[string]string {
	result := make(map[string]string)

	var extract func(points []navPoint)
	extract = func(points []navPoint) {
		for _, np := range points {
			href := np.Content.Src
			title := strings.TrimSpace(np.Label.Text)

			if _, exists := result[href]; !exists {
				result[href] = title
			}
			if idx := strings.Index(href, "#"); idx != -1 {
				baseHref := href[:idx]
				if _, exists := result[baseHref]; !exists {
					result[baseHref] = title
				}
			}
			baseHref := path.Base(href)
			if idx := strings.Index(baseHref, "#"); idx != -1 {
				baseHref = baseHref[:idx]
			}
			if _, exists := result[baseHref]; !exists {
				result[baseHref] = title
			}

			extract(np.Children)
		}
	}
	extract(points)

	return result
}

// lookupHref resolves a spine href against the TOC map, trying the exact
// href first and its basename second.
func lookupHref(tocByHref map[string]string, href string) (string, bool) {
	if href == "" {
		return "", false
	}
	if title, ok := tocByHref[href]; ok {
		return title, true
	}
	if title, ok := tocByHref[path.Base(href)]; ok {
		return title, true
	}
	return "", false
}

func findAndReadNCX(filename string, pkg *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range pkg.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}

	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}

	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}
