package htmldocx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/pipeline"
)

var errImageTooLarge = errors.New("image exceeds size limit")

// embeddable lists the picture formats the default content types declare.
var embeddable = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// image embeds a local or data: picture, or writes its alt text.
func (w *walker) image(p *docx.Paragraph, s segment, t target) {
	src := attr(s.image, "src")
	alt := strings.TrimSpace(attr(s.image, "alt"))

	if !t.inCell {
		data, err := w.loadImage(src)
		if err == nil {
			run, err := p.AddInlineDrawing(data)
			if err == nil {
				fitDrawing(run, maxDrawingWidthEMU)
				return
			}
			w.logger.Debug("picture not embedded", zap.String("src", src), zap.Error(err))
		} else if src != "" {
			w.logger.Debug("picture not embedded", zap.String("src", src), zap.Error(err))
		}
	}

	if alt == "" {
		alt = "image"
	}
	p.Children = append(p.Children, textRun("["+alt+"]", s.f))
}

// loadImage returns the bytes of a picture the document may embed.
func (w *walker) loadImage(src string) ([]byte, error) {
	var data []byte
	switch {
	case strings.HasPrefix(src, "data:"):
		d, err := decodeDataURI(src)
		if err != nil {
			return nil, err
		}
		data = d
	default:
		path, ok := pipeline.ResolveLocalImage(src, w.imageDir)
		if !ok {
			return nil, fmt.Errorf("not a local picture under %q", w.imageDir)
		}
		d, err := readLimited(path, w.maxImage)
		if err != nil {
			return nil, err
		}
		data = d
	}

	if ct := http.DetectContentType(data); !embeddable[ct] {
		return nil, fmt.Errorf("unsupported picture type %s", ct)
	}
	return data, nil
}

func readLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- path is contained in the image directory
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errImageTooLarge
	}
	return data, nil
}

// decodeDataURI decodes a base64 data: URI.
func decodeDataURI(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New("only base64 data URIs are supported")
	}
	return base64.StdEncoding.DecodeString(payload)
}

// fitDrawing scales an inline drawing down to maxCX, keeping the aspect
// ratio. go-docx sizes pictures at one point per pixel.
func fitDrawing(run *docx.Run, maxCX int64) {
	if run == nil {
		return
	}
	for _, c := range run.Children {
		d, ok := c.(*docx.Drawing)
		if !ok || d.Inline == nil || d.Inline.Extent == nil {
			continue
		}
		ext := d.Inline.Extent
		if ext.CX > maxCX {
			ext.CY = ext.CY * maxCX / ext.CX
			ext.CX = maxCX
		}
	}
}
