package model

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// Name is a case-neutral sequence of words identifying a model concept, for
// example ["virtual", "machine"]. The zero value is the empty name.
type Name struct {
	words []string
}

// NewName builds a name from the given words. Words are lowercased and empty
// words are dropped.
func NewName(words ...string) Name {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return Name{words: out}
}

// ParseName splits s into words using case changes and the separators '_',
// '-', '.' and whitespace. A run of capitals is kept together as an acronym
// unless it is followed by a lowercase letter, so "HTTPSConnection" becomes
// ["https", "connection"].
func ParseName(s string) Name {
	var (
		words []string
		cur   strings.Builder
		runes = []rune(s)
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !prevUpper || nextLower {
				flush()
			}
		}
		cur.WriteRune(r)
	}
	flush()
	return NewName(words...)
}

// Words returns a copy of the words of the name.
func (n Name) Words() []string {
	out := make([]string, len(n.words))
	copy(out, n.words)
	return out
}

// Len returns the number of words.
func (n Name) Len() int { return len(n.words) }

// IsEmpty reports whether the name has no words.
func (n Name) IsEmpty() bool { return len(n.words) == 0 }

// Concat returns a new name with the words of other appended.
func (n Name) Concat(other Name) Name {
	out := make([]string, 0, len(n.words)+len(other.words))
	out = append(out, n.words...)
	out = append(out, other.words...)
	return Name{words: out}
}

// Equal reports whether both names have the same word sequence.
func (n Name) Equal(other Name) bool {
	return n.Compare(other) == 0
}

// Compare orders names word by word.
func (n Name) Compare(other Name) int {
	for i := 0; i < len(n.words) && i < len(other.words); i++ {
		if c := strings.Compare(n.words[i], other.words[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(n.words) < len(other.words):
		return -1
	case len(n.words) > len(other.words):
		return 1
	}
	return 0
}

// String renders the name in camel case, the way names are written in model
// documents.
func (n Name) String() string {
	var b strings.Builder
	for i, w := range n.words {
		if i == 0 {
			b.WriteString(w)
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// Plural returns the name with its last word pluralized.
func Plural(n Name) Name {
	return inflectLast(n, inflection.Plural)
}

// Singular returns the name with its last word singularized.
func Singular(n Name) Name {
	return inflectLast(n, inflection.Singular)
}

func inflectLast(n Name, fn func(string) string) Name {
	if n.IsEmpty() {
		return n
	}
	words := n.Words()
	words[len(words)-1] = strings.ToLower(fn(words[len(words)-1]))
	return Name{words: words}
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
