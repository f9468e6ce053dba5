package model

// SourceDirectInput marks content that was submitted directly by the caller
// rather than fetched from a URL.
const SourceDirectInput = "direct_input"

// ExtractedContent is the canonical analysis unit produced by the normalizer.
// Text is never empty: absence of usable content is signalled by the
// normalizer returning an error, not by an empty record.
type ExtractedContent struct {
	Text   string `json:"text"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Date   string `json:"date,omitempty"`
	Source string `json:"source"` // SourceDirectInput or the origin URL
	Length int    `json:"length"` // character count of Text
}
