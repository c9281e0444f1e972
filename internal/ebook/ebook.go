// Package ebook opens epub files and flattens them into the JSON book
// structure the segmenter consumes.
package ebook

import (
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"

	"github.com/jannes/han-cihui/internal/segmentation"
)

// OpenBook reads an epub and returns its text as a Book: title and author
// from the package metadata, chapters from spine reading order with NCX
// labels as titles.
//
// Spine items without a TOC entry fold into the preceding chapter; content
// before the first TOC match becomes an untitled leading chapter. Chapter
// titles are numbered so that they stay unique within the book.
func OpenBook(filename string) (*segmentation.Book, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	pkg := rc.Rootfiles[0]

	title := strings.TrimSpace(pkg.Title)
	if title == "" {
		return nil, fmt.Errorf("epub has no title metadata")
	}
	author := strings.TrimSpace(pkg.Creator)
	if author == "" {
		author = "unknown"
	}

	tocByHref := hrefTitleMap(filename, pkg)

	var chapters []rawChapter
	current := rawChapter{}
	for _, ref := range pkg.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}

		// A spine item that carries a TOC label starts a new chapter,
		// everything else accumulates into the current one.
		if label, ok := lookupHref(tocByHref, ref.Item.HREF); ok {
			chapters = append(chapters, current)
			current = rawChapter{title: label}
		}
		current.content.WriteString(htmlToText(string(data)))
	}
	chapters = append(chapters, current)

	book := &segmentation.Book{
		Title:    title,
		Author:   author,
		Chapters: make([]segmentation.Chapter, 0, len(chapters)),
	}
	for _, ch := range chapters {
		content := strings.TrimSpace(ch.content.String())
		if ch.title == "" && content == "" {
			continue
		}
		index := len(book.Chapters)
		book.Chapters = append(book.Chapters, segmentation.Chapter{
			Title:   NumberedTitle(index, ch.title),
			Content: content,
		})
	}
	if len(book.Chapters) == 0 {
		return nil, fmt.Errorf("epub %s contains no text", filename)
	}
	return book, nil
}

type rawChapter struct {
	title   string
	content strings.Builder
}

// NumberedTitle prefixes a chapter label with its zero-padded position, so
// word locations stay unambiguous for books with repeated chapter names.
func NumberedTitle(index int, label string) string {
	return fmt.Sprintf("%04d-%s", index, label)
}

// htmlToText strips markup, keeping one line per non-empty text node.
func htmlToText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				out.WriteString(t)
				out.WriteString("\n")
			}
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out.String()
}
