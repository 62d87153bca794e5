package schema

import (
	"strings"
	"unicode"
)

var abbreviations = map[string]string{
	"nm": "name", "dt": "date", "no": "number", "cd": "code",
	"desc": "description", "amt": "amount", "cnt": "count", "qty": "quantity",
	"addr": "address", "tel": "phone", "ph": "phone", "mob": "phone",
	"pwd": "password", "passwd": "password", "pw": "password",
	"img": "image", "zip": "zipcode", "msg": "message", "txt": "text",
	"subj": "subject", "usr": "user", "emp": "employee", "cust": "customer",
	"dept": "department", "grp": "group", "cat": "category",
	"lat": "latitude", "lng": "longitude", "lon": "longitude",
	"avg": "average", "yn": "yesno", "flg": "flag", "is": "yesno",
	"stat": "status", "sts": "status", "typ": "type", "val": "value",
	"seq": "sequence", "idx": "index", "ts": "date",
}

// commentRules are checked in order against the lowercased column comment.
var commentRules = []struct {
	meaning  string
	keywords []string
}{
	{"phone", []string{"phone", "mobile", "fax"}},
	{"email", []string{"email", "e-mail", "mail"}},
	{"address", []string{"address", "street"}},
	{"zipcode", []string{"zip", "postal"}},
	{"name", []string{"name"}},
	{"password", []string{"password"}},
	{"title", []string{"title", "subject"}},
	{"description", []string{"description", "comment", "note"}},
	{"date", []string{"date", "time"}},
	{"price", []string{"price", "cost", "amount", "total"}},
	{"count", []string{"count", "quantity", "qty"}},
	{"yesno", []string{"flag", "yes/no", "boolean"}},
	{"country", []string{"country"}},
	{"city", []string{"city"}},
}

// AnalyzeMeaning guesses what a column holds, first from its comment and otherwise by
// splitting the column name into words and expanding common abbreviations.
// The result is a space separated phrase such as "email" or "customer id".
func AnalyzeMeaning(colName, comment string) string {
	c := strings.ToLower(comment)
	if c != "" {
		for _, rule := range commentRules {
			for _, kw := range rule.keywords {
				if strings.Contains(c, kw) {
					return rule.meaning
				}
			}
		}
	}

	words := splitWords(colName)
	for i, w := range words {
		if full, ok := abbreviations[w]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}

// splitWords breaks snake_case, kebab-case and CamelCase names into lowercase words.
func splitWords(name string) []string {
	var words []string
	var cur []rune
	runes := []rune(name)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
