package mcpserver

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/tool"
)

// numberOrString accepts 14, 10.5 and "10.5".
func numberOrString(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Types:       []string{"number", "string"},
		Description: description,
	}
}

func stringProp(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

// convertInputSchema is written by hand: inference from a struct cannot
// express the number-or-string size fields.
func convertInputSchema() *jsonschema.Schema {
	props := map[string]*jsonschema.Schema{
		tool.ParamMarkdown: stringProp("Markdown source to convert."),
		tool.ParamFilename: stringProp("Output file name; .docx is appended when missing."),
		tool.ParamStyleProfile: stringProp(
			"Style profile name, slug or alias (学术论文/academic, 公文/official, 商务报告/business, 技术文档/technical)."),
		tool.ParamBodyFont:     stringProp("Body font family, e.g. 宋体."),
		tool.ParamBodySize:     numberOrString("Body font size in points."),
		tool.ParamPageWidth:    numberOrString("Page width in millimetres."),
		tool.ParamPageHeight:   numberOrString("Page height in millimetres."),
		tool.ParamMarginTop:    numberOrString("Top margin in millimetres."),
		tool.ParamMarginBottom: numberOrString("Bottom margin in millimetres."),
		tool.ParamMarginLeft:   numberOrString("Left margin in millimetres."),
		tool.ParamMarginRight:  numberOrString("Right margin in millimetres."),
		tool.ParamOrientation: {
			Type:        "string",
			Description: "Page orientation.",
			Enum:        []any{md2docx.OrientationPortrait, md2docx.OrientationLandscape},
		},
	}
	for level := 1; level <= md2docx.HeadingLevels; level++ {
		props[tool.HeadingFontParam(level)] = stringProp(fmt.Sprintf("Heading %d font family.", level))
		props[tool.HeadingSizeParam(level)] = numberOrString(fmt.Sprintf("Heading %d font size in points.", level))
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{tool.ParamMarkdown},
	}
}

func emptyInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}
