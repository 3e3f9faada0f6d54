package redis

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/query"
)

const (
	// Hash field aliases declared in the index schema.
	attrGeoName = "GeoName"
	attrGeoTag  = "GeoTag"

	secondsPerDay = 86400
	// Upper bound on histogram rows; one per day with documents.
	maxHistogramRows = 100000
	minInfixLength   = 2
)

// attribute maps a document field path to the schema attribute that indexes it.
func attribute(field string) string {
	switch field {
	case domain.FieldGeoreferenceName:
		return attrGeoName
	case domain.FieldGeoreferenceKeyword:
		return domain.FieldGeoreferences
	default:
		return field
	}
}

// fullTextQuery renders ((@Title:(a | b)) => { $weight: 2; } | @Content:(a | b)) followed by
// a group of optional clauses of which at least one must match.
func fullTextQuery(q *query.FullText) string {
	terms := anyTerm(q.Query)

	parts := make([]string, 0, len(q.Fields))
	for _, f := range q.Fields {
		clause := fmt.Sprintf("@%s:(%s)", attribute(f.Field), terms)
		if f.Boost != 1 {
			clause = fmt.Sprintf("(%s) => { $weight: %s; }", clause, strconv.FormatFloat(f.Boost, 'f', -1, 64))
		}
		parts = append(parts, clause)
	}
	out := "(" + strings.Join(parts, " | ") + ")"

	if len(q.Should) == 0 {
		return out
	}
	should := make([]string, 0, len(q.Should))
	for _, m := range q.Should {
		should = append(should, fmt.Sprintf("@%s:(%s)", attribute(m.Field), anyTerm(m.Value)))
	}
	group := "(" + strings.Join(should, " | ") + ")"
	if q.MinimumShouldMatch == 0 {
		group = "~" + group
	}
	return out + " " + group
}

// autocompleteQuery ORs a fuzzy term match, an exact phrase and an infix match on the field.
func autocompleteQuery(q *query.Autocomplete) string {
	field := "@" + attribute(q.Field)
	clauses := []string{}

	if fuzzy := fuzzyTerms(q.Fuzzy); fuzzy != "" {
		clauses = append(clauses, fmt.Sprintf("%s:(%s)", field, fuzzy))
	}
	if phrase := strings.Join(tokens(q.Phrase), " "); phrase != "" {
		clauses = append(clauses, fmt.Sprintf(`%s:("%s")`, field, phrase))
	}
	if infix := infixTerms(q.Contains); infix != "" {
		clauses = append(clauses, fmt.Sprintf("%s:(%s)", field, infix))
	}
	return strings.Join(clauses, " | ")
}

func searchArgs(index, q string, fields []string, size int) []string {
	args := []string{index, q, "WITHSCORES"}
	if len(fields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(fields)))
		args = append(args, fields...)
	}
	return append(args, "LIMIT", "0", strconv.Itoa(size), "DIALECT", "2")
}

// topTermsArgs splits the comma-joined field into one row per value and counts rows per value.
func topTermsArgs(q *query.TopTerms) []string {
	field := "@" + attribute(q.Field)
	return []string{
		q.Index, "*",
		"LOAD", "1", field,
		"FILTER", fmt.Sprintf("exists(%s)", field),
		"APPLY", fmt.Sprintf(`split(%s, "%s")`, field, tagSeparator), "AS", "place",
		"GROUPBY", "1", "@place",
		"REDUCE", "COUNT", "0", "AS", "doc_count",
		"SORTBY", "4", "@doc_count", "DESC", "@place", "ASC",
		"MAX", strconv.Itoa(q.Size),
		"DIALECT", "2",
	}
}

// histogramArgs floors the epoch-seconds field to UTC days and counts documents per day.
func histogramArgs(q *query.DateHistogram) ([]string, error) {
	if q.Interval != query.IntervalDay {
		return nil, fmt.Errorf("unsupported interval %q", q.Interval)
	}
	if q.Format != query.FormatDay {
		return nil, fmt.Errorf("unsupported key format %q", q.Format)
	}

	field := "@" + attribute(q.Field)
	args := []string{
		q.Index, fmt.Sprintf("%s:[-inf +inf]", field),
		"LOAD", "1", field,
		"APPLY", fmt.Sprintf(`timefmt(floor(%s/%d)*%d, "%%Y-%%m-%%d")`, field, secondsPerDay, secondsPerDay), "AS", "day",
		"GROUPBY", "1", "@day",
		"REDUCE", "COUNT", "0", "AS", "doc_count",
	}
	if q.MinDocCount > 1 {
		args = append(args, "FILTER", fmt.Sprintf("@doc_count>=%d", q.MinDocCount))
	}
	args = append(args,
		"SORTBY", "2", "@day", "ASC",
		"MAX", strconv.Itoa(maxHistogramRows),
		"DIALECT", "2",
	)
	return args, nil
}

// anyTerm renders the words of s as an OR group.
func anyTerm(s string) string {
	return strings.Join(tokens(s), " | ")
}

func fuzzyTerms(f query.Fuzzy) string {
	words := tokens(f.Value)
	for i, w := range words {
		d := query.EditDistance(query.Fuzzy{Value: w, Fuzziness: f.Fuzziness})
		if d > 0 {
			marks := strings.Repeat("%", d)
			words[i] = marks + w + marks
		}
	}
	return strings.Join(words, " ")
}

func infixTerms(contains string) string {
	var out []string
	for _, w := range tokens(strings.Trim(contains, "*")) {
		if utf8.RuneCountInString(w) < minInfixLength {
			continue
		}
		out = append(out, "*"+w+"*")
	}
	return strings.Join(out, " ")
}

// tokens splits s on whitespace and escapes query syntax in each word.
func tokens(s string) []string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = queryEscaper.Replace(w)
	}
	return words
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`,`, `\,`,
	`.`, `\.`,
)
