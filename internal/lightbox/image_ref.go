package lightbox

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ImageRef is one entry of an image collection: either an Image with a title
// or a bare PlainURL.
type ImageRef interface {
	resolve() (url, title string)
}

// Image is a structured collection entry.
type Image struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (i Image) resolve() (string, string) { return i.URL, i.Title }

// PlainURL is a collection entry given as a bare URL. It has no title.
type PlainURL string

func (u PlainURL) resolve() (string, string) { return string(u), "" }

// Resolve returns the URL and title of ref. A nil ref resolves to empty
// strings.
func Resolve(ref ImageRef) (url, title string) {
	if ref == nil {
		return "", ""
	}
	return ref.resolve()
}

// Images is an ordered image collection. In JSON every element is either an
// object with url and title or a plain string.
type Images []ImageRef

// UnmarshalJSON decodes a mixed array of objects and strings.
func (im *Images) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Images, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 {
			return fmt.Errorf("image %d: empty element", i)
		}
		switch elem[0] {
		case '"':
			var s string
			if err := json.Unmarshal(elem, &s); err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			out = append(out, PlainURL(s))
		case '{':
			var img Image
			if err := json.Unmarshal(elem, &img); err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			out = append(out, img)
		default:
			return fmt.Errorf("image %d: expected object or string, got %s", i, elem)
		}
	}
	*im = out
	return nil
}

// MarshalJSON writes structured entries as objects and plain URLs as strings.
func (im Images) MarshalJSON() ([]byte, error) {
	raw := make([]any, 0, len(im))
	for _, ref := range im {
		switch r := ref.(type) {
		case Image:
			raw = append(raw, r)
		case PlainURL:
			raw = append(raw, string(r))
		default:
			url, title := Resolve(ref)
			raw = append(raw, Image{URL: url, Title: title})
		}
	}
	return json.Marshal(raw)
}
