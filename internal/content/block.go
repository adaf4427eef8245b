package content

import (
	"encoding/json"
	"fmt"
)

// BlockKind discriminates the closed set of content block variants. Unknown
// kinds are rejected at decode time so no block can be silently dropped by a
// consumer that forgets to handle it.
type BlockKind string

const (
	BlockSubheading BlockKind = "subheading"
	BlockParagraph  BlockKind = "paragraph"
	BlockList       BlockKind = "list"
	BlockNote       BlockKind = "note"
)

// NoteTone is the visual emphasis of a note block.
type NoteTone string

const (
	ToneTip        NoteTone = "tip"
	ToneHighlight  NoteTone = "highlight"
	ToneCompliance NoteTone = "compliance"
	ToneNote       NoteTone = "note"
)

// ToneFromClassTokens maps a legacy class token list onto a note tone.
// Returns empty when no tone token is present, meaning a plain paragraph.
func ToneFromClassTokens(tokens []string) NoteTone {
	has := func(want string) bool {
		for _, token := range tokens {
			if token == want {
				return true
			}
		}
		return false
	}

	switch {
	case has("tip"):
		return ToneTip
	case has("highlight"):
		return ToneHighlight
	case has("compliance"):
		return ToneCompliance
	case has("note"):
		return ToneNote
	}
	return ""
}

// Block is one tagged block-level unit inside a section. Exactly one shape is
// populated depending on Kind: Text for subheading/paragraph, Items for list,
// Tone+Text for note.
type Block struct {
	Kind  BlockKind
	Text  string
	Items []string
	Tone  NoteTone
}

// Subheading builds a subheading block.
func Subheading(text string) Block { return Block{Kind: BlockSubheading, Text: text} }

// Paragraph builds a paragraph block.
func Paragraph(text string) Block { return Block{Kind: BlockParagraph, Text: text} }

// List builds a list block.
func List(items []string) Block { return Block{Kind: BlockList, Items: items} }

// Note builds a toned note block.
func Note(tone NoteTone, text string) Block { return Block{Kind: BlockNote, Tone: tone, Text: text} }

// Validate checks the block carries the shape its kind requires.
func (b Block) Validate() error {
	switch b.Kind {
	case BlockSubheading, BlockParagraph:
		if b.Text == "" {
			return fmt.Errorf("%s block with empty text", b.Kind)
		}
	case BlockList:
		if len(b.Items) == 0 {
			return fmt.Errorf("list block with no items")
		}
	case BlockNote:
		switch b.Tone {
		case ToneTip, ToneHighlight, ToneCompliance, ToneNote:
		default:
			return fmt.Errorf("note block with unknown tone %q", b.Tone)
		}
		if b.Text == "" {
			return fmt.Errorf("note block with empty text")
		}
	default:
		return fmt.Errorf("unknown block kind %q", b.Kind)
	}
	return nil
}

type textBlockJSON struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type listBlockJSON struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

type noteBlockJSON struct {
	Type string `json:"type"`
	Tone string `json:"tone"`
	Text string `json:"text"`
}

// MarshalJSON writes the wire shape the front-end consumes:
// {"type":"paragraph","text":...}, {"type":"list","items":[...]},
// {"type":"note","tone":...,"text":...}.
func (b Block) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BlockSubheading, BlockParagraph:
		return json.Marshal(textBlockJSON{Type: string(b.Kind), Text: b.Text})
	case BlockList:
		return json.Marshal(listBlockJSON{Type: string(b.Kind), Items: b.Items})
	case BlockNote:
		return json.Marshal(noteBlockJSON{Type: string(b.Kind), Tone: string(b.Tone), Text: b.Text})
	}
	return nil, fmt.Errorf("cannot marshal block of unknown kind %q", b.Kind)
}

// UnmarshalJSON decodes a tagged block, rejecting unknown kinds.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  string   `json:"type"`
		Text  string   `json:"text"`
		Items []string `json:"items"`
		Tone  string   `json:"tone"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch BlockKind(raw.Type) {
	case BlockSubheading:
		*b = Subheading(raw.Text)
	case BlockParagraph:
		*b = Paragraph(raw.Text)
	case BlockList:
		*b = List(raw.Items)
	case BlockNote:
		*b = Note(NoteTone(raw.Tone), raw.Text)
	default:
		return fmt.Errorf("unknown block type %q", raw.Type)
	}
	return nil
}
