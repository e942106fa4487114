// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ImageExtractor saves the images embedded in a document to dir and returns
// the written paths in document order.
type ImageExtractor interface {
	ExtractImages(path, dir string) ([]string, error)
}

const presentationPart = "ppt/presentation.xml"

// shapeElements are the spTree children that count as shapes. Group
// properties and extension lists are not shapes.
var shapeElements = map[string]bool{
	"sp":           true,
	"grpSp":        true,
	"graphicFrame": true,
	"cxnSp":        true,
	"pic":          true,
	"contentPart":  true,
}

type presentationXML struct {
	Slides []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Items []struct {
		ID         string `xml:"Id,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

type slideXML struct {
	Tree struct {
		Shapes []shapeXML `xml:",any"`
	} `xml:"cSld>spTree"`
}

type shapeXML struct {
	XMLName     xml.Name
	Placeholder *struct{} `xml:"nvPicPr>nvPr>ph"`
	Blip        struct {
		Embed string `xml:"embed,attr"`
	} `xml:"blipFill>blip"`
}

// PPTXImageExtractor saves the picture shapes of a .pptx presentation. Files
// are named slide_<slide>_img_<shape><ext>, both indices 1-based, the shape
// index counting every shape on the slide. Placeholder pictures, pictures in
// groups and linked (not embedded) images are skipped.
type PPTXImageExtractor struct{}

// NewPPTXImageExtractor creates a PPTXImageExtractor.
func NewPPTXImageExtractor() *PPTXImageExtractor {
	return &PPTXImageExtractor{}
}

// ExtractImages implements ImageExtractor. dir is created even when the
// presentation holds no pictures.
func (x *PPTXImageExtractor) ExtractImages(pptxPath, dir string) ([]string, error) {
	paths, err := x.extract(pptxPath, dir)
	if err != nil {
		return paths, &ExtractionError{Path: pptxPath, Err: err}
	}
	return paths, nil
}

func (x *PPTXImageExtractor) extract(pptxPath, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}

	zr, err := zip.OpenReader(pptxPath)
	if err != nil {
		return nil, fmt.Errorf("opening presentation: %w", err)
	}
	defer zr.Close()

	pkg := newPackage(&zr.Reader)
	slides, err := pkg.slideParts()
	if err != nil {
		return nil, err
	}

	var saved []string
	for i, slidePart := range slides {
		var slide slideXML
		if err := pkg.decode(slidePart, &slide); err != nil {
			return saved, err
		}
		rels, err := pkg.rels(slidePart)
		if err != nil {
			return saved, err
		}

		shape := 0
		for _, s := range slide.Tree.Shapes {
			if !shapeElements[s.XMLName.Local] {
				continue
			}
			shape++
			if s.XMLName.Local != "pic" || s.Placeholder != nil || s.Blip.Embed == "" {
				continue
			}
			media, ok := rels[s.Blip.Embed]
			if !ok {
				continue
			}
			name := fmt.Sprintf("slide_%d_img_%d%s", i+1, shape, strings.ToLower(path.Ext(media)))
			out := filepath.Join(dir, name)
			if err := pkg.copyTo(media, out); err != nil {
				return saved, err
			}
			saved = append(saved, out)
		}
	}
	return saved, nil
}

// opcPackage indexes the parts of an Open Packaging Conventions archive.
type opcPackage struct {
	parts map[string]*zip.File
}

func newPackage(r *zip.Reader) *opcPackage {
	parts := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		parts[strings.TrimPrefix(f.Name, "/")] = f
	}
	return &opcPackage{parts: parts}
}

func (p *opcPackage) open(part string) (io.ReadCloser, error) {
	f, ok := p.parts[part]
	if !ok {
		return nil, fmt.Errorf("part %s missing from package", part)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening part %s: %w", part, err)
	}
	return rc, nil
}

func (p *opcPackage) decode(part string, v any) error {
	rc, err := p.open(part)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("parsing part %s: %w", part, err)
	}
	return nil
}

// rels maps relationship IDs of part to the absolute part names they target.
// A part without a relationships part has no relationships.
func (p *opcPackage) rels(part string) (map[string]string, error) {
	relsPart := path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
	if _, ok := p.parts[relsPart]; !ok {
		return map[string]string{}, nil
	}
	var doc relationshipsXML
	if err := p.decode(relsPart, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(doc.Items))
	for _, r := range doc.Items {
		if r.TargetMode == "External" {
			continue
		}
		out[r.ID] = resolvePart(part, r.Target)
	}
	return out, nil
}

// slideParts lists slide part names in presentation order.
func (p *opcPackage) slideParts() ([]string, error) {
	var pres presentationXML
	if err := p.decode(presentationPart, &pres); err != nil {
		return nil, err
	}
	rels, err := p.rels(presentationPart)
	if err != nil {
		return nil, err
	}
	slides := make([]string, 0, len(pres.Slides))
	for _, s := range pres.Slides {
		target, ok := rels[s.RelID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", s.RelID)
		}
		slides = append(slides, target)
	}
	return slides, nil
}

func (p *opcPackage) copyTo(part, dst string) error {
	rc, err := p.open(part)
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return f.Close()
}

// resolvePart resolves a relationship target against the part that owns it.
func resolvePart(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(path.Dir(source), target)
}
