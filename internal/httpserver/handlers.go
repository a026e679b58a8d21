package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/tool"
)

// SummaryHeader carries the JSON summary on /v1/convert responses.
const SummaryHeader = "X-Conversion-Summary"

// toolResponse is the body of /v1/tools/markdown_to_docx.
type toolResponse struct {
	Messages []tool.Message `json:"messages"`
}

func (s *Server) handleTool(c *gin.Context) {
	args, ok := s.readArgs(c)
	if !ok {
		return
	}
	msgs := s.tool.Invoke(c.Request.Context(), args)
	status := http.StatusOK
	if tool.IsError(msgs) {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, toolResponse{Messages: msgs})
}

func (s *Server) handleConvert(c *gin.Context) {
	args, ok := s.readArgs(c)
	if !ok {
		return
	}
	msgs := s.tool.Invoke(c.Request.Context(), args)
	if tool.IsError(msgs) {
		c.String(http.StatusUnprocessableEntity, msgs[0].Text)
		return
	}

	var doc, summary *tool.Message
	for i := range msgs {
		switch msgs[i].Kind {
		case tool.KindBlob:
			doc = &msgs[i]
		case tool.KindJSON:
			summary = &msgs[i]
		}
	}
	if doc == nil {
		c.String(http.StatusInternalServerError, "Conversion failed: no document produced")
		return
	}

	if summary != nil {
		data, err := json.Marshal(summary.Summary)
		if err != nil {
			_ = c.Error(err)
		} else {
			c.Header(SummaryHeader, asciiJSON(data))
		}
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	c.Data(http.StatusOK, md2docx.MIMEType, doc.Data)
}

// asciiJSON escapes every non-ASCII rune of a JSON document as \uXXXX so
// the value survives clients that read header bytes as Latin-1.
func asciiJSON(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(&b, `\u%04x`, r)
	}
	return b.String()
}

func (s *Server) handleProfiles(c *gin.Context) {
	profiles, err := s.svc.Profiles(c.Request.Context())
	if err != nil {
		s.logger.Warn("profile listing failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// readArgs decodes the JSON body into tool arguments, keeping numbers as
// json.Number. On failure the response is already written.
func (s *Server) readArgs(c *gin.Context) (map[string]any, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.UseNumber()

	args := map[string]any{}
	if err := dec.Decode(&args); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		_ = c.Error(err)
		msg := tool.TextMessage(fmt.Sprintf("Invalid request body: %v", err))
		c.AbortWithStatusJSON(status, toolResponse{Messages: []tool.Message{msg}})
		return nil, false
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, true
}
