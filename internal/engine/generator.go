package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"nl2sql/internal/schema"
)

// Generator produces fake column values. Two generators with the same seed and clock
// produce the same sequence.
type Generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

// NewGenerator seeds the faker; dates are drawn from the year before now.
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{faker: gofakeit.New(seed), now: now}
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}

// GenerateValue returns a value for col, using its SQL type first and its meaning to
// pick realistic text. The returned value is one of string, int, float64, bool, []byte.
func (g *Generator) GenerateValue(col *schema.Column, tableName string) any {
	dataType := strings.ToLower(col.SQLType)
	if dataType == "" {
		dataType = strings.ToLower(col.DataType)
	}
	colName := strings.ToLower(col.Name)
	meaning := col.Meaning
	isID := meaning == "id" || strings.HasSuffix(meaning, " id")

	switch {
	case strings.HasPrefix(dataType, "date"), strings.Contains(dataType, "time"):
		val := g.faker.DateRange(g.now.AddDate(-1, 0, 0), g.now)
		if dataType == "date" {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")

	case strings.Contains(dataType, "int"):
		if strings.Contains(meaning, "yesno") {
			return g.faker.Number(0, 1)
		}
		if strings.Contains(meaning, "year") {
			return g.now.Year() - g.faker.Number(0, 25)
		}
		if strings.Contains(meaning, "count") || strings.Contains(meaning, "quantity") {
			return g.faker.Number(1, 100)
		}
		switch {
		case strings.HasPrefix(dataType, "tinyint"):
			return g.faker.Number(0, 255)
		case strings.HasPrefix(dataType, "smallint"):
			return g.faker.Number(1, 30000)
		}
		return g.faker.Number(1, 50000)

	case strings.HasPrefix(dataType, "decimal"), strings.HasPrefix(dataType, "numeric"),
		strings.HasPrefix(dataType, "float"), strings.HasPrefix(dataType, "double"):
		return g.faker.Price(0.99, 999.99)

	case strings.HasPrefix(dataType, "bit"), strings.HasPrefix(dataType, "bool"):
		return g.faker.Bool()

	case strings.Contains(dataType, "binary"), strings.Contains(dataType, "blob"):
		return []byte(g.faker.LetterN(8))
	}

	return truncate(g.text(meaning, colName, isID, tableName), col.Length)
}

// text covers char, varchar, text and the NVARCHAR fallback type.
func (g *Generator) text(meaning, colName string, isID bool, tableName string) string {
	has := func(word string) bool {
		return strings.Contains(meaning, word) || strings.Contains(colName, word)
	}

	switch {
	case isID:
		return fmt.Sprintf("%s-%05d", strings.ToUpper(truncate(tableName, 3)), g.faker.Number(0, 99999))
	case has("email"):
		return g.faker.Email()
	case has("phone"):
		return g.faker.Phone()
	case has("first"):
		return g.faker.FirstName()
	case has("last"):
		return g.faker.LastName()
	case has("company"):
		return g.faker.Company()
	case has("name"):
		return g.faker.Name()
	case has("address"), has("street"):
		return g.faker.Street()
	case has("zipcode"), has("postal"):
		return g.faker.Zip()
	case has("city"):
		return g.faker.City()
	case has("country"):
		return g.faker.Country()
	case has("state"):
		return g.faker.State()
	case has("url"), has("website"):
		return g.faker.URL()
	case has("password"):
		return g.faker.Password(true, true, true, false, false, 12)
	case has("title"), has("subject"):
		return g.faker.Sentence(3)
	case has("description"), has("comment"), has("text"), has("message"):
		return g.faker.Sentence(10)
	case has("code"), has("status"), has("type"):
		return strings.ToUpper(g.faker.LetterN(3))
	case has("yesno"), has("flag"):
		if g.faker.Bool() {
			return "Y"
		}
		return "N"
	}
	return g.faker.Sentence(4)
}
