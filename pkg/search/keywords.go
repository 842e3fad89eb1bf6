package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// KeywordIndex is a prefix trie over the words of symbol names. Each word
// maps to the number of names using it.
type KeywordIndex struct {
	trie  *patricia.Trie
	words int
}

// Keyword is a completion candidate.
type Keyword struct {
	Word  string
	Count int
}

func NewKeywordIndex() *KeywordIndex {
	return &KeywordIndex{trie: patricia.NewTrie()}
}

// Add indexes every word of name.
func (k *KeywordIndex) Add(name string) {
	for _, word := range splitWords(name) {
		key := patricia.Prefix(word)
		if item := k.trie.Get(key); item != nil {
			k.trie.Set(key, item.(int)+1)
			continue
		}
		k.trie.Insert(key, 1)
		k.words++
	}
}

// Len returns the number of distinct words.
func (k *KeywordIndex) Len() int {
	return k.words
}

// Lookup returns the candidates starting with prefix, most used first, then
// alphabetical. A limit of zero or less returns every candidate.
func (k *KeywordIndex) Lookup(prefix string, limit int) []Keyword {
	upper := strings.ToUpper(strings.TrimSpace(prefix))
	if upper == "" {
		return []Keyword{}
	}

	var found []Keyword
	err := k.trie.VisitSubtree(patricia.Prefix(upper), func(p patricia.Prefix, item patricia.Item) error {
		count, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for keyword %s", item, p)
			return nil
		}
		found = append(found, Keyword{Word: string(p), Count: count})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting keyword subtree: %v", err)
		return []Keyword{}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Count != found[j].Count {
			return found[i].Count > found[j].Count
		}
		return found[i].Word < found[j].Word
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	if found == nil {
		return []Keyword{}
	}
	return found
}

// Complete is Lookup without the counts.
func (k *KeywordIndex) Complete(prefix string, limit int) []string {
	found := k.Lookup(prefix, limit)
	words := make([]string, len(found))
	for i, kw := range found {
		words[i] = kw.Word
	}
	return words
}

func splitWords(name string) []string {
	return strings.FieldsFunc(strings.ToUpper(name), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == ','
	})
}
