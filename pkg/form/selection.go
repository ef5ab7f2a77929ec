package form

// Selection is the ordered set of elements a selector matched. Accessors read
// the first element, mirroring how a browser helper reads `.val()`.
type Selection []Element

// Len reports the number of matched elements.
func (s Selection) Len() int {
	return len(s)
}

// First returns the first matched element.
func (s Selection) First() (Element, bool) {
	if len(s) == 0 {
		return Element{}, false
	}
	return s[0], true
}

// Val returns the first element's value; nil when nothing matched or the
// value is undefined.
func (s Selection) Val() *string {
	el, ok := s.First()
	if !ok || el.Value == nil {
		return nil
	}
	v := *el.Value
	return &v
}

// Files returns the first element's attachments.
func (s Selection) Files() []File {
	el, ok := s.First()
	if !ok {
		return nil
	}
	return el.Files
}

// Attr returns a named attribute of the first element. Only id, name and type
// are modelled.
func (s Selection) Attr(name string) string {
	el, ok := s.First()
	if !ok {
		return ""
	}
	switch name {
	case "id":
		return el.ID
	case "name":
		return el.Name
	case "type":
		return el.Type
	default:
		return ""
	}
}
