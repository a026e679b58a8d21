package styles

// Manager is the mutable style tree of one conversion. It is not safe for
// concurrent use; build one per call.
type Manager struct {
	fonts map[Key]FontStyle
	paras map[Key]ParagraphStyle
	page  PageStyle
}

// NewManager returns a manager holding the built-in defaults: 宋体 body,
// 黑体 headings, A4 page.
func NewManager() *Manager {
	m := &Manager{
		fonts: make(map[Key]FontStyle, len(Keys)),
		paras: make(map[Key]ParagraphStyle, len(Keys)),
		page:  DefaultPage(),
	}

	m.fonts[KeyNormal] = FontStyle{Family: DefaultFamily, Size: DefaultSize, Color: Black}
	m.paras[KeyNormal] = ParagraphStyle{Alignment: AlignJustify, LineSpacing: DefaultLineSpacing, IndentFirstLine: DefaultFirstLineIndent}

	headingSizes := [HeadingLevels]float64{16, 14, 12, 12, 10.5}
	for i, size := range headingSizes {
		key := HeadingKey(i + 1)
		m.fonts[key] = FontStyle{Family: "黑体", Size: size, Bold: true, Color: Black}
		align := AlignLeft
		if i == 0 {
			align = AlignCenter
		}
		m.paras[key] = ParagraphStyle{Alignment: align, LineSpacing: DefaultLineSpacing, SpaceBefore: 6, SpaceAfter: 6}
	}

	m.fonts[KeyTitle] = FontStyle{Family: "黑体", Size: 18, Bold: true, Color: Black}
	m.paras[KeyTitle] = ParagraphStyle{Alignment: AlignCenter, LineSpacing: DefaultLineSpacing, SpaceBefore: 12, SpaceAfter: 12}

	m.fonts[KeyQuote] = FontStyle{Family: "楷体", Size: DefaultSize, Color: Black}
	m.paras[KeyQuote] = ParagraphStyle{Alignment: AlignJustify, LineSpacing: DefaultLineSpacing, IndentLeft: 24}

	m.fonts[KeyCode] = FontStyle{Family: "Consolas", Size: 10.5}
	m.paras[KeyCode] = ParagraphStyle{Alignment: AlignLeft, LineSpacing: 1.0}

	return m
}

// Font returns the font descriptor of key.
func (m *Manager) Font(key Key) FontStyle {
	return m.fonts[key]
}

// Paragraph returns the paragraph descriptor of key.
func (m *Manager) Paragraph(key Key) ParagraphStyle {
	return m.paras[key]
}

// Page returns the page descriptor.
func (m *Manager) Page() PageStyle {
	return m.page
}

// UpdateStyle replaces the descriptors of key. Nil arguments leave the
// corresponding descriptor unchanged.
func (m *Manager) UpdateStyle(key Key, font *FontStyle, para *ParagraphStyle) {
	if font != nil {
		m.fonts[key] = *font
	}
	if para != nil {
		m.paras[key] = *para
	}
}

// SetPage replaces the page descriptor.
func (m *Manager) SetPage(p PageStyle) {
	m.page = p
}

// ApplyTemplate copies every key present in t, and its page if any.
// Template margins left at zero become 25 mm.
func (m *Manager) ApplyTemplate(t *Template) {
	if t == nil {
		return
	}
	for name, def := range t.Styles {
		m.UpdateStyle(Key(name), def.Font, def.Paragraph)
	}
	if t.Page != nil {
		m.SetPage(t.Page.withTemplateDefaults())
	}
}

// ApplyOverrides patches heading levels and body text that carry an
// override. Heading fonts are forced bold and black; the level-1 heading
// is centred and the others left-aligned, all at single spacing. Body
// text keeps its flags and alignment, moves to single spacing and gets a
// 24 pt first-line indent when it had none.
func (m *Manager) ApplyOverrides(o Overrides) {
	for level := 1; level <= HeadingLevels; level++ {
		ov := o.Heading(level)
		if !ov.IsSet() {
			continue
		}
		key := HeadingKey(level)
		prior := m.fonts[key]
		m.fonts[key] = FontStyle{
			Family: ov.family(prior.Family),
			Size:   ov.size(prior.Size),
			Bold:   true,
			Italic: prior.Italic,
			Color:  Black,
		}

		para := m.paras[key]
		para.Alignment = AlignLeft
		if level == 1 {
			para.Alignment = AlignCenter
		}
		para.LineSpacing = 1.0
		m.paras[key] = para
	}

	if o.Body.IsSet() {
		prior := m.fonts[KeyNormal]
		m.fonts[KeyNormal] = FontStyle{
			Family: o.Body.family(prior.Family),
			Size:   o.Body.size(prior.Size),
			Bold:   prior.Bold,
			Italic: prior.Italic,
			Color:  Black,
		}

		para := m.paras[KeyNormal]
		para.LineSpacing = 1.0
		if para.IndentFirstLine <= 0 {
			para.IndentFirstLine = DefaultFirstLineIndent
		}
		m.paras[KeyNormal] = para
	}
}

// ApplyPageOverride replaces each page field the override carries.
func (m *Manager) ApplyPageOverride(p *PageOverride) {
	if p.IsEmpty() {
		return
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&m.page.Width, p.Width)
	set(&m.page.Height, p.Height)
	set(&m.page.MarginTop, p.MarginTop)
	set(&m.page.MarginBottom, p.MarginBottom)
	set(&m.page.MarginLeft, p.MarginLeft)
	set(&m.page.MarginRight, p.MarginRight)
	if p.Orientation != "" {
		m.page.Orientation = p.Orientation
	}
}
