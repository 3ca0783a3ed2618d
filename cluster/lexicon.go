package cluster

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/armon/go-radix"
	mapsutil "github.com/projectdiscovery/utils/maps"
)

// Lexicon maps words to sets of entries. Words are kept in a radix tree for
// ordered traversal and prefix lookups.
type Lexicon struct {
	tree *radix.Tree
}

// NewLexicon returns an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{tree: radix.New()}
}

// Add records entry for word.
func (l *Lexicon) Add(word, entry string) {
	v, ok := l.tree.Get(word)
	if !ok {
		v = make(map[string]struct{})
		l.tree.Insert(word, v)
	}
	v.(map[string]struct{})[entry] = struct{}{}
}

// Entries returns the sorted entries of word.
func (l *Lexicon) Entries(word string) []string {
	v, ok := l.tree.Get(word)
	if !ok {
		return nil
	}
	return sortedKeys(v.(map[string]struct{}))
}

// Len returns the number of words.
func (l *Lexicon) Len() int {
	return l.tree.Len()
}

// Words returns the words in lexicographic order.
func (l *Lexicon) Words() []string {
	words := make([]string, 0, l.tree.Len())
	l.tree.Walk(func(s string, _ interface{}) bool {
		words = append(words, s)
		return false
	})
	return words
}

// WithPrefix returns the words starting with prefix in lexicographic order.
func (l *Lexicon) WithPrefix(prefix string) []string {
	var words []string
	l.tree.WalkPrefix(prefix, func(s string, _ interface{}) bool {
		words = append(words, s)
		return false
	})
	return words
}

// Write prints one "word: { e1, e2 }" line per word, words with the most
// entries first.
func (l *Lexicon) Write(w io.Writer) error {
	words := l.Words()
	sizes := make(map[string]int, len(words))
	for _, word := range words {
		v, _ := l.tree.Get(word)
		sizes[word] = len(v.(map[string]struct{}))
	}
	sort.SliceStable(words, func(i, j int) bool {
		return sizes[words[i]] > sizes[words[j]]
	})
	bw := bufio.NewWriter(w)
	for _, word := range words {
		fmt.Fprintf(bw, "%s: { %s }\n", word, strings.Join(l.Entries(word), ", "))
	}
	return bw.Flush()
}

// ParadigmLexicon links every member of a ratio to the other member.
func (l *List) ParadigmLexicon() *Lexicon {
	lex := NewLexicon()
	for _, c := range l.Clusters {
		for _, r := range c.ratios {
			lex.Add(r.Left, r.Right)
			lex.Add(r.Right, r.Left)
		}
	}
	return lex
}

// AnnotatedLexicon annotates every word with the first ratio of its
// clusters, the side of the word marked as <A> : B or A : <B>. Clusters are
// expected to be sorted so that the first ratio is the median one.
func (l *List) AnnotatedLexicon() *Lexicon {
	lex := NewLexicon()
	for _, c := range l.Clusters {
		median := c.ratios[0]
		left := "<" + median.Left + ">" + RatioSymbol + median.Right
		right := median.Left + RatioSymbol + "<" + median.Right + ">"
		for _, r := range c.ratios {
			lex.Add(r.Left, left)
			lex.Add(r.Right, right)
		}
	}
	return lex
}

func sortedKeys(m map[string]struct{}) []string {
	keys := mapsutil.GetKeys(m)
	sort.Strings(keys)
	return keys
}
