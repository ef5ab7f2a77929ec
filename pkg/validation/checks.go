package validation

import (
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-formsend/pkg/form"
)

var (
	checksMu sync.RWMutex
	checks   = map[string]CheckFunc{
		"digits": Digits("value must be a whole number"),
	}
)

// RegisterCheck makes fn available to declarative custom rules under name.
// Registering an existing name replaces it; empty names and nil functions are
// ignored.
func RegisterCheck(name string, fn CheckFunc) {
	key := strings.TrimSpace(name)
	if key == "" || fn == nil {
		return
	}
	checksMu.Lock()
	defer checksMu.Unlock()
	checks[key] = fn
}

// LookupCheck returns the check registered under name.
func LookupCheck(name string) (CheckFunc, bool) {
	checksMu.RLock()
	defer checksMu.RUnlock()
	fn, ok := checks[strings.TrimSpace(name)]
	return fn, ok
}

// Digits returns a check that reports message when the located field holds a
// value that is not an integer. Empty values pass; pair it with Required.
func Digits(message string) CheckFunc {
	return func(sel form.Selection) string {
		v := sel.Val()
		if v == nil || strings.TrimSpace(*v) == "" {
			return ""
		}
		if _, err := strconv.ParseInt(strings.TrimSpace(*v), 10, 64); err != nil {
			return message
		}
		return ""
	}
}
