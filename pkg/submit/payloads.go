package submit

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formsend/pkg/form"
)

// FormFromDocument collects the document's form data set as a FormPayload.
func FormFromDocument(doc *form.Document) FormPayload {
	return FormPayload{Values: url.Values(doc.Values())}
}

// MultipartFromDocument collects the document's values and attached files.
func MultipartFromDocument(doc *form.Document) MultipartPayload {
	return MultipartPayload{
		Values: url.Values(doc.Values()),
		Files:  doc.Attachments(),
	}
}

// JSONFromValues builds a flat JSON object from values, keeping the first
// value per key. Keys listed in numeric are sent as numbers when they parse as
// integers and omitted when they are blank.
func JSONFromValues(values map[string][]string, numeric ...string) JSONPayload {
	asNumber := make(map[string]struct{}, len(numeric))
	for _, key := range numeric {
		asNumber[key] = struct{}{}
	}

	obj := make(map[string]any, len(values))
	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}
		v := vs[0]
		if _, ok := asNumber[key]; ok {
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				continue
			}
			if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
				obj[key] = n
				continue
			}
		}
		obj[key] = v
	}
	return JSONPayload{Value: obj}
}

// QueryURL appends values to base as query parameters.
func QueryURL(base string, values map[string][]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for _, key := range sortedKeys(values) {
		for _, v := range values[key] {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
