package styler

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
)

const stylesPart = "word/styles.xml"

// stylesXML is the subset of word/styles.xml needed to map ids to names.
type stylesXML struct {
	Styles []struct {
		ID   string `xml:"styleId,attr"`
		Name struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

// styleNames returns the style id to style name table of a DOCX package.
// A package without styles.xml yields an empty table.
func styleNames(data []byte) (map[string]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	for _, f := range zr.File {
		if f.Name != stylesPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		raw, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, err
		}

		var doc stylesXML
		if err := xml.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		for _, s := range doc.Styles {
			if s.ID != "" && s.Name.Val != "" {
				names[s.ID] = s.Name.Val
			}
		}
	}
	return names, nil
}

// nameFor resolves a paragraph style id. Paragraphs without a style use
// Normal, and ids without a name entry resolve to themselves.
func nameFor(names map[string]string, id string) string {
	if id == "" {
		return "Normal"
	}
	if name, ok := names[id]; ok {
		return name
	}
	return id
}
