package document

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ContentType is the tag discriminating block content variants.
type ContentType string

// Known content tags. Anything else round-trips as OpaqueContent.
const (
	ContentText           ContentType = "text"
	ContentHeading        ContentType = "heading"
	ContentImage          ContentType = "image"
	ContentVideo          ContentType = "video"
	ContentMaterialWidget ContentType = "material-widget"
	ContentQuiz           ContentType = "quiz"
	ContentFlashcard      ContentType = "flashcard"
	ContentFillBlank      ContentType = "fill-blank"
)

// KnownContentType reports whether tag is one of the built-in variants.
func KnownContentType(tag string) bool {
	switch ContentType(tag) {
	case ContentText, ContentHeading, ContentImage, ContentVideo,
		ContentMaterialWidget, ContentQuiz, ContentFlashcard, ContentFillBlank:
		return true
	}
	return false
}

// Content is the tagged union carried by a Block. Each variant holds only
// the fields relevant to its type.
type Content interface {
	// ContentType returns the variant's tag.
	ContentType() ContentType

	// CloneContent returns a deep copy of the content value.
	CloneContent() Content
}

// TextContent is a plain text paragraph.
type TextContent struct {
	Text string `json:"text"`
}

func (c *TextContent) ContentType() ContentType { return ContentText }
func (c *TextContent) CloneContent() Content    { out := *c; return &out }

// HeadingContent is a heading with a level (1 is largest).
type HeadingContent struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

func (c *HeadingContent) ContentType() ContentType { return ContentHeading }
func (c *HeadingContent) CloneContent() Content    { out := *c; return &out }

// ImageContent references an image by URL.
type ImageContent struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

func (c *ImageContent) ContentType() ContentType { return ContentImage }
func (c *ImageContent) CloneContent() Content    { out := *c; return &out }

// VideoContent references a video by URL.
type VideoContent struct {
	URL      string `json:"url"`
	Provider string `json:"provider,omitempty"`
}

func (c *VideoContent) ContentType() ContentType { return ContentVideo }
func (c *VideoContent) CloneContent() Content    { out := *c; return &out }

// MaterialWidgetContent is an embedded widget instantiated from the
// material catalog. Payload is widget-defined JSON.
type MaterialWidgetContent struct {
	WidgetType string          `json:"widgetType"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

func (c *MaterialWidgetContent) ContentType() ContentType { return ContentMaterialWidget }

func (c *MaterialWidgetContent) CloneContent() Content {
	out := *c
	if c.Payload != nil {
		out.Payload = append(json.RawMessage(nil), c.Payload...)
	}
	return &out
}

// QuizContent is a multiple-choice question. Answer indexes Options.
type QuizContent struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

func (c *QuizContent) ContentType() ContentType { return ContentQuiz }

func (c *QuizContent) CloneContent() Content {
	out := *c
	out.Options = append([]string(nil), c.Options...)
	return &out
}

// FlashcardContent is a two-sided study card.
type FlashcardContent struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

func (c *FlashcardContent) ContentType() ContentType { return ContentFlashcard }
func (c *FlashcardContent) CloneContent() Content    { out := *c; return &out }

// FillBlankContent is a cloze exercise. Template uses {{blank}} markers
// matched positionally to Answers.
type FillBlankContent struct {
	Template string   `json:"template"`
	Answers  []string `json:"answers"`
}

func (c *FillBlankContent) ContentType() ContentType { return ContentFillBlank }

func (c *FillBlankContent) CloneContent() Content {
	out := *c
	out.Answers = append([]string(nil), c.Answers...)
	return &out
}

// OpaqueContent preserves content with an unrecognized tag byte-for-byte.
// Raw is the complete original object, including its "type" field.
type OpaqueContent struct {
	Tag string
	Raw json.RawMessage
}

func (c *OpaqueContent) ContentType() ContentType { return ContentType(c.Tag) }

func (c *OpaqueContent) CloneContent() Content {
	out := *c
	if c.Raw != nil {
		out.Raw = append(json.RawMessage(nil), c.Raw...)
	}
	return &out
}

// MarshalContent serializes a content value as a self-describing object
// with its "type" tag inlined.
func MarshalContent(c Content) ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	if o, ok := c.(*OpaqueContent); ok {
		if len(o.Raw) > 0 {
			return append([]byte(nil), o.Raw...), nil
		}
		return sjson.SetBytes([]byte(`{}`), "type", o.Tag)
	}
	body, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(body, "type", string(c.ContentType()))
}

// UnmarshalContent decodes a content object by its "type" tag. Unknown or
// missing tags yield OpaqueContent rather than an error, so future content
// variants survive load/export untouched.
func UnmarshalContent(data []byte) (Content, error) {
	tag := gjson.GetBytes(data, "type").String()
	var c Content
	switch ContentType(tag) {
	case ContentText:
		c = &TextContent{}
	case ContentHeading:
		c = &HeadingContent{}
	case ContentImage:
		c = &ImageContent{}
	case ContentVideo:
		c = &VideoContent{}
	case ContentMaterialWidget:
		c = &MaterialWidgetContent{}
	case ContentQuiz:
		c = &QuizContent{}
	case ContentFlashcard:
		c = &FlashcardContent{}
	case ContentFillBlank:
		c = &FillBlankContent{}
	default:
		return &OpaqueContent{Tag: tag, Raw: append(json.RawMessage(nil), data...)}, nil
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}
