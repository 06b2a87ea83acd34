package nlp

import "strings"

// functionWords are closed-class words that are never nouns.
var functionWords = setOf(
	// determiners and quantifiers
	"a", "an", "the", "this", "that", "these", "those", "some", "any", "each", "every",
	"no", "all", "both", "either", "neither", "much", "many", "more", "most", "few", "less",
	"several", "such", "other", "another",
	// pronouns
	"i", "me", "my", "mine", "you", "your", "yours", "he", "him", "his", "she", "her", "hers",
	"it", "its", "we", "us", "our", "ours", "they", "them", "their", "theirs", "myself",
	"yourself", "itself", "ourselves", "themselves", "who", "whom", "whose", "which", "what",
	// prepositions
	"of", "in", "on", "at", "by", "for", "with", "about", "against", "between", "into",
	"through", "during", "before", "after", "above", "below", "to", "from", "up", "down",
	"out", "off", "over", "under", "again", "further", "within", "without", "across", "along",
	"around", "behind", "beyond", "near", "onto", "toward", "towards", "upon", "via", "per",
	// conjunctions
	"and", "or", "but", "nor", "so", "yet", "if", "because", "while", "although", "though",
	"unless", "until", "whether", "than", "as",
	// auxiliaries and modals
	"is", "am", "are", "was", "were", "be", "been", "being", "have", "has", "had", "having",
	"do", "does", "did", "doing", "will", "would", "shall", "should", "can", "could", "may",
	"might", "must",
	// adverbs
	"not", "very", "too", "also", "just", "only", "then", "there", "here", "when", "where",
	"why", "how", "now", "never", "always", "often", "still", "already", "even", "ever",
	"well", "again", "once",
)

// commonVerbs are frequent verbs in instructional prose. Tokens in this set are
// not counted as nouns.
var commonVerbs = setOf(
	"get", "gets", "getting", "got", "make", "makes", "making", "made", "go", "goes", "going",
	"went", "take", "takes", "taking", "took", "see", "sees", "seeing", "saw", "know", "knows",
	"knew", "use", "uses", "using", "used", "find", "finds", "finding", "found", "give", "gives",
	"giving", "gave", "tell", "tells", "think", "thinks", "become", "becomes", "show", "shows",
	"start", "starts", "started", "starting", "begin", "begins", "explain", "explains",
	"discuss", "discusses", "describe", "describes", "identify", "identifies", "explore",
	"explores", "compare", "compares", "consider", "considers", "include", "includes",
	"complete", "finish", "submit", "review", "read", "write", "create", "design", "implement",
	"analyze", "analyse", "evaluate", "understand", "learn", "master", "practice", "practise",
	"apply",
)

// commonAdjectives are frequent adjectives that otherwise pass the noun test.
var commonAdjectives = setOf(
	"new", "old", "good", "bad", "great", "small", "large", "big", "long", "short", "high",
	"low", "important", "key", "main", "basic", "advanced", "simple", "different", "same",
	"next", "last", "first", "second", "third", "final", "early", "late", "best", "better",
	"easy", "hard", "quick", "useful", "common", "general", "specific", "clear", "full",
)

var nounSuffixes = []string{
	"tion", "sion", "ment", "ness", "ity", "ance", "ence", "ship", "hood", "ism", "ist",
	"ure", "ogy", "ics", "age", "dom", "er", "or", "ant", "ery",
}

// HasNoun reports whether text contains at least one noun-like token.
//
// A token is noun-like when it is a content word (not a function word,
// common verb, common adjective, adverb or number) or carries a nominal
// suffix, or when it directly follows a determiner.
func HasNoun(text string) bool {
	tokens := Tokens(text)
	for i, tok := range tokens {
		if isNounLike(tok, prev(tokens, i)) {
			return true
		}
	}
	return false
}

// Nouns returns the noun-like tokens of text in order.
func Nouns(text string) []string {
	tokens := Tokens(text)
	var out []string
	for i, tok := range tokens {
		if isNounLike(tok, prev(tokens, i)) {
			out = append(out, tok)
		}
	}
	return out
}

func isNounLike(tok, before string) bool {
	if tok == "" || functionWords[tok] || isNumber(tok) {
		return false
	}
	if hasAnySuffix(tok, nounSuffixes) && len(tok) > 4 {
		return true
	}
	if determiners[before] && !commonAdjectives[tok] {
		return true
	}
	if commonVerbs[tok] || commonAdjectives[tok] {
		return false
	}
	if strings.HasSuffix(tok, "ly") || strings.HasSuffix(tok, "ing") || strings.HasSuffix(tok, "ed") {
		return false
	}
	return len(tok) > 1
}

var determiners = setOf(
	"a", "an", "the", "this", "that", "these", "those", "my", "your", "our", "their", "his",
	"her", "its", "each", "every", "some", "any",
)

// verbTriggers precede a base-form verb: modals, the infinitive marker and
// coordinators that chain imperatives.
var verbTriggers = setOf(
	"to", "will", "would", "shall", "should", "can", "could", "may", "might", "must",
	"please", "and", "then", "i", "you", "we", "they", "students", "learners",
)

// Verbs returns the tokens of text that occupy a verb position: the first
// token of an imperative, or a token following a modal, "to", a subject
// pronoun or a coordinator. Only tokens in lexicon are considered.
func Verbs(text string, lexicon map[string]bool) []string {
	tokens := Tokens(text)
	var out []string
	for i, tok := range tokens {
		if !lexicon[tok] {
			continue
		}
		if i == 0 || verbTriggers[tokens[i-1]] {
			out = append(out, tok)
		}
	}
	return out
}

// Set builds a lookup set from words.
func Set(words ...string) map[string]bool {
	return setOf(words...)
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func prev(tokens []string, i int) string {
	if i == 0 {
		return ""
	}
	return tokens[i-1]
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
