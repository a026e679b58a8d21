package tool

// Kind tags a Message.
type Kind string

// Message kinds.
const (
	KindBlob Kind = "blob"
	KindJSON Kind = "json"
	KindText Kind = "text"
)

// Message is one item of a tool answer. Exactly one payload is set,
// matching Kind.
type Message struct {
	Kind Kind `json:"type"`

	// Blob payload; Data is base64 in JSON.
	Data     []byte `json:"data,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
	Filename string `json:"filename,omitempty"`

	// JSON payload.
	Summary *Summary `json:"json,omitempty"`

	// Text payload.
	Text string `json:"text,omitempty"`
}

// Summary is the JSON message that follows a document.
type Summary struct {
	Filename     string             `json:"filename"`
	SizeBytes    int                `json:"size_bytes"`
	StyleProfile string             `json:"style_profile"`
	Overrides    RequestedOverrides `json:"overrides"`
	Page         *PageSummary       `json:"page"`
	Styled       bool               `json:"styled"`
	Message      string             `json:"message"`
}

// PageSummary echoes the requested page override.
type PageSummary struct {
	WidthMM        *float64 `json:"width_mm,omitempty"`
	HeightMM       *float64 `json:"height_mm,omitempty"`
	MarginTopMM    *float64 `json:"margin_top_mm,omitempty"`
	MarginBottomMM *float64 `json:"margin_bottom_mm,omitempty"`
	MarginLeftMM   *float64 `json:"margin_left_mm,omitempty"`
	MarginRightMM  *float64 `json:"margin_right_mm,omitempty"`
	Orientation    string   `json:"orientation,omitempty"`
}

// TextMessage builds a text answer.
func TextMessage(text string) Message {
	return Message{Kind: KindText, Text: text}
}

// IsError reports whether msgs is a failure answer: one text message.
func IsError(msgs []Message) bool {
	return len(msgs) == 1 && msgs[0].Kind == KindText
}
