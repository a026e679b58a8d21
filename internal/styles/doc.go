// Package styles holds the typographic model applied to generated documents.
//
// A Template is a named profile loaded from YAML: font and paragraph
// descriptors per style key (normal, heading1..heading5, title, quote, code)
// plus an optional page descriptor. Templates are indexed by a Registry,
// looked up by display name, file slug or alias.
//
// A Manager is the per-conversion style tree. It starts from built-in
// defaults, receives the selected template, then the caller's overrides:
//
//	m := styles.NewManager()
//	if tmpl, ok := registry.Lookup("学术论文"); ok {
//		m.ApplyTemplate(tmpl)
//	}
//	m.ApplyOverrides(overrides)
//	m.ApplyPageOverride(page)
//
// When no registry is available, Fallback provides the minimal hardcoded
// table used instead.
package styles
