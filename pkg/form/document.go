package form

import (
	"mime"
	"path/filepath"
	"strings"
	"sync"
)

// File is an attachment held by a file input.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewFile builds an attachment named after the base of path, with the
// content type registered for its extension ("" when none is known).
func NewFile(path string, data []byte) File {
	return File{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}
}

// Size reports the attachment length in bytes.
func (f File) Size() int64 {
	return int64(len(f.Data))
}

// Element is a single input. A nil Value means the input has no value at all
// (as opposed to an empty string).
type Element struct {
	ID      string
	Name    string
	Type    string
	Value   *string
	Checked bool
	Files   []File
}

// Text returns a pointer to s, convenient for Element literals.
func Text(s string) *string {
	return &s
}

// Document is an ordered collection of elements. It is safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	elements []Element
}

// NewDocument seeds a document with the provided elements, preserving order.
func NewDocument(elements ...Element) *Document {
	doc := &Document{}
	for _, el := range elements {
		doc.elements = append(doc.elements, cloneElement(el))
	}
	return doc
}

// Add appends an element.
func (d *Document) Add(el Element) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements = append(d.elements, cloneElement(el))
}

// Find returns the elements matching selector in document order. Selectors the
// grammar does not understand match nothing.
func (d *Document) Find(selector string) Selection {
	if d == nil {
		return nil
	}
	sel, ok := parseSelector(selector)
	if !ok {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out Selection
	for _, el := range d.elements {
		if sel.matches(el) {
			out = append(out, cloneElement(el))
		}
	}
	return out
}

// CheckedValue returns the value of the first checked element named name.
func (d *Document) CheckedValue(name string) (string, bool) {
	if d == nil || strings.TrimSpace(name) == "" {
		return "", false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, el := range d.elements {
		if el.Name != name || !el.Checked {
			continue
		}
		if el.Value == nil {
			return "", true
		}
		return *el.Value, true
	}
	return "", false
}

// Set assigns value to every element matching selector and reports how many
// elements changed.
func (d *Document) Set(selector, value string) int {
	return d.update(selector, func(el *Element) {
		v := value
		el.Value = &v
	})
}

// Clear resets the value of every element matching selector to undefined.
func (d *Document) Clear(selector string) int {
	return d.update(selector, func(el *Element) {
		el.Value = nil
	})
}

// Check marks the radio (or checkbox) named name with the given value as
// checked. Radios sharing the name are unchecked first.
func (d *Document) Check(name, value string) bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	found := -1
	for i := range d.elements {
		el := &d.elements[i]
		if el.Name != name {
			continue
		}
		if el.Type == "radio" {
			el.Checked = false
		}
		if found < 0 && el.Value != nil && *el.Value == value {
			found = i
		}
	}
	if found < 0 {
		return false
	}
	d.elements[found].Checked = true
	return true
}

// Attach replaces the files held by the inputs matching selector.
func (d *Document) Attach(selector string, files ...File) int {
	return d.update(selector, func(el *Element) {
		el.Files = append([]File(nil), files...)
	})
}

// Values flattens the document into name/value pairs the way a browser builds
// a form data set: unnamed, file, and unchecked radio/checkbox inputs are
// skipped; undefined values are skipped too.
func (d *Document) Values() map[string][]string {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string][]string)
	for _, el := range d.elements {
		if el.Name == "" || el.Type == "file" || el.Value == nil {
			continue
		}
		if (el.Type == "radio" || el.Type == "checkbox") && !el.Checked {
			continue
		}
		out[el.Name] = append(out[el.Name], *el.Value)
	}
	return out
}

// Attachments returns the files per input name.
func (d *Document) Attachments() map[string][]File {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string][]File)
	for _, el := range d.elements {
		if el.Name == "" || len(el.Files) == 0 {
			continue
		}
		out[el.Name] = append(out[el.Name], el.Files...)
	}
	return out
}

func (d *Document) update(selector string, fn func(*Element)) int {
	if d == nil {
		return 0
	}
	sel, ok := parseSelector(selector)
	if !ok {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for i := range d.elements {
		if sel.matches(d.elements[i]) {
			fn(&d.elements[i])
			n++
		}
	}
	return n
}

func cloneElement(el Element) Element {
	out := el
	if el.Value != nil {
		v := *el.Value
		out.Value = &v
	}
	if len(el.Files) > 0 {
		out.Files = append([]File(nil), el.Files...)
	}
	return out
}
