// Package md2docx converts Markdown documents to styled Word (.docx) files
// with Chinese typography profiles.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown: "# 标题\n\n正文。",
//	    Filename: "report",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(md2docx.NormalizeFilename("report"), result.DOCX, 0o644)
//
// The result carries the intermediate HTML (result.HTML) for debugging and
// reports whether styling succeeded (result.Styled, result.StyleErr).
//
// # Conversion Pipeline
//
//  1. Markdown preprocessing (line normalization, ==highlight== syntax)
//  2. Markdown to HTML via Goldmark (GFM, footnotes, CJK, syntax highlighting)
//  3. HTML to a base DOCX via go-docx
//  4. Style profile application (fonts, paragraph spacing, page box)
//
// Step 4 is best effort: if it fails, the unstyled document from step 3 is
// returned and the reason is reported on ConvertResult.StyleErr.
//
// # Style Profiles
//
// Four profiles are embedded: 学术论文 (academic), 公文 (official),
// 商务报告 (business) and 技术文档 (technical). Select one by display name,
// slug or alias, and patch it per call:
//
//	size := 15.0
//	var o md2docx.Overrides
//	o.Headings[0] = md2docx.FontOverride{Family: "方正小标宋简体", Size: &size}
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown:  content,
//	    Profile:   "公文",
//	    Overrides: o,
//	    Page:      &md2docx.PageOverride{Orientation: "landscape"},
//	})
//
// # Custom Assets
//
// Add or shadow profiles and reference styles from a directory:
//
//	conv, err := md2docx.NewConverter(md2docx.WithAssetPath("/path/to/styles"))
//
// Asset directory structure:
//
//	styles/
//	├── profiles/
//	│   └── custom.yaml
//	└── docx/
//	    └── styles.xml
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. ConverterPool bounds how many
// conversions run at once:
//
//	pool := md2docx.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
package md2docx
