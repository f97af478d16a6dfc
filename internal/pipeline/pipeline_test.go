package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrubdb/scrubdb/internal/anonymizer"
	"github.com/scrubdb/scrubdb/internal/config"
	"github.com/scrubdb/scrubdb/internal/logger"
)

func newProcessor(t *testing.T, rules map[string]string, preserve bool) *Processor {
	t.Helper()
	cfg := config.GetDefaults()
	cfg.CustomRules = rules
	cfg.PreserveRelationships = preserve
	return New(cfg, logger.Nop())
}

func TestCompileRules(t *testing.T) {
	log := logger.Nop()

	t.Run("ValidRules", func(t *testing.T) {
		rules := CompileRules(map[string]string{
			"users.email": "fake_email",
			"users.phone": "phone",
		}, log)
		require.Len(t, rules, 2)
	})

	t.Run("UnrecognizedStrategyDropped", func(t *testing.T) {
		rules := CompileRules(map[string]string{"users.email": "invalid"}, log)
		assert.Empty(t, rules)
	})

	t.Run("DropIsPerRule", func(t *testing.T) {
		rules := CompileRules(map[string]string{
			"users.email": "bogus",
			"users.name":  "fake_name",
		}, log)
		require.Len(t, rules, 1)
		assert.Equal(t, "users.name", rules[0].Name)
	})

	t.Run("PatternsAreLiteral", func(t *testing.T) {
		// Regex metacharacters in a pattern match themselves.
		rules := CompileRules(map[string]string{"users.email": "hash"}, log)
		require.Len(t, rules, 1)
		assert.True(t, rules[0].Pattern.MatchString("users.email"))
		assert.False(t, rules[0].Pattern.MatchString("usersXemail"))
	})

	t.Run("OrderIsSortedByPattern", func(t *testing.T) {
		rules := CompileRules(map[string]string{
			"zz.col": "fake_phone",
			"aa.col": "fake_email",
		}, log)
		require.Len(t, rules, 2)
		assert.Equal(t, "aa.col", rules[0].Name)
		assert.Equal(t, "zz.col", rules[1].Name)
	})
}

func TestProcessLine(t *testing.T) {
	t.Run("NoRulesPassThrough", func(t *testing.T) {
		p := newProcessor(t, nil, true)
		assert.Equal(t, 0, p.RuleCount())

		line := `INSERT INTO users VALUES (1, 'john@example.com');`
		assert.Equal(t, line, p.ProcessLine(line))
	})

	t.Run("EmailSubstituted", func(t *testing.T) {
		p := newProcessor(t, map[string]string{"email": "fake_email"}, true)

		line := `INSERT INTO users (id, email) VALUES (1, 'john@example.com');`
		out := p.ProcessLine(line)

		assert.NotEqual(t, line, out)
		assert.NotContains(t, out, "john@example.com")
		assert.Contains(t, out, "INSERT INTO users (id, email) VALUES (1, '")
	})

	t.Run("PhoneSubstituted", func(t *testing.T) {
		p := newProcessor(t, map[string]string{"phone": "fake_phone"}, true)

		line := `INSERT INTO users (id, phone) VALUES (1, '555-123-4567');`
		out := p.ProcessLine(line)

		assert.NotContains(t, out, "555-123-4567")
		assert.Regexp(t, `\d{3}-\d{3}-\d{4}`, out)
	})

	t.Run("CategoryGating", func(t *testing.T) {
		// The rule matches the line, but its strategy targets emails; the
		// phone span stays untouched.
		p := newProcessor(t, map[string]string{"orders": "fake_email"}, true)

		line := `INSERT INTO orders VALUES ('555-123-4567');`
		assert.Equal(t, line, p.ProcessLine(line))
	})

	t.Run("NonFakeStrategiesNeverSubstitute", func(t *testing.T) {
		p := newProcessor(t, map[string]string{"users": "hash"}, true)

		line := `INSERT INTO users VALUES ('john@example.com');`
		assert.Equal(t, line, p.ProcessLine(line))
	})

	t.Run("CreditCardNeverSubstituted", func(t *testing.T) {
		p := newProcessor(t, map[string]string{"orders": "mask_credit_card"}, true)

		line := `INSERT INTO orders VALUES ('4532-1234-5678-9010');`
		assert.Equal(t, line, p.ProcessLine(line))
	})

	t.Run("RepeatedOriginalReplacedEverywhere", func(t *testing.T) {
		p := newProcessor(t, map[string]string{"email": "fake_email"}, true)

		line := `UPDATE email SET a = 'dup@example.com', b = 'dup@example.com';`
		out := p.ProcessLine(line)

		assert.NotContains(t, out, "dup@example.com")
		// Both occurrences carry the same replacement.
		fields := strings.SplitN(out, "'", 5)
		require.Len(t, fields, 5)
		assert.Equal(t, fields[1], fields[3])
	})

	t.Run("FirstMatchingRuleWins", func(t *testing.T) {
		p := newProcessor(t, map[string]string{
			"aa.col": "fake_email",
			"zz.col": "fake_phone",
		}, true)

		// Both patterns match; aa.col sorts first, so the line resolves to
		// FakeEmail and the phone span is left alone.
		line := `-- aa.col zz.col: 'a@b.io' '555-123-4567'`
		out := p.ProcessLine(line)

		assert.NotContains(t, out, "a@b.io")
		assert.Contains(t, out, "555-123-4567")
	})
}

func TestRelationshipPreservationAcrossLines(t *testing.T) {
	t.Run("PreserveOn", func(t *testing.T) {
		p := newProcessor(t, map[string]string{"email": "fake_email"}, true)

		first := p.ProcessLine(`email: 'john@example.com'`)
		second := p.ProcessLine(`email: 'john@example.com'`)
		assert.Equal(t, first, second)
	})

	t.Run("PreserveOffStillSubstitutes", func(t *testing.T) {
		p := newProcessor(t, map[string]string{"email": "fake_email"}, false)

		out := p.ProcessLine(`email: 'john@example.com'`)
		assert.NotContains(t, out, "john@example.com")
	})
}

func TestSeededAnonymizerInjection(t *testing.T) {
	cfg := config.GetDefaults()
	cfg.CustomRules = map[string]string{"email": "fake_email"}

	first := NewWithAnonymizer(cfg, logger.Nop(), anonymizer.NewWithFaker(gofakeit.New(7)))
	second := NewWithAnonymizer(cfg, logger.Nop(), anonymizer.NewWithFaker(gofakeit.New(7)))

	line := `email: 'john@example.com'`
	assert.Equal(t, first.ProcessLine(line), second.ProcessLine(line))
}

func TestRun(t *testing.T) {
	t.Run("LineCountAndOrder", func(t *testing.T) {
		p := newProcessor(t, nil, true)

		input := "one\ntwo\nthree\n"
		var out bytes.Buffer
		lines, err := p.Run(strings.NewReader(input), &out)

		require.NoError(t, err)
		assert.Equal(t, 3, lines)
		assert.Equal(t, input, out.String())
	})

	t.Run("MissingFinalNewlineStillTerminated", func(t *testing.T) {
		p := newProcessor(t, nil, true)

		var out bytes.Buffer
		lines, err := p.Run(strings.NewReader("only line"), &out)

		require.NoError(t, err)
		assert.Equal(t, 1, lines)
		assert.Equal(t, "only line\n", out.String())
	})

	t.Run("LinesPastOneMiBStreamThrough", func(t *testing.T) {
		p := newProcessor(t, nil, true)

		line := "INSERT INTO t VALUES ('" + strings.Repeat("x", 1<<20) + "');"
		var out bytes.Buffer
		lines, err := p.Run(strings.NewReader(line+"\n"), &out)

		require.NoError(t, err)
		assert.Equal(t, 1, lines)
		assert.Equal(t, line+"\n", out.String())
	})

	t.Run("EmptyInput", func(t *testing.T) {
		p := newProcessor(t, nil, true)

		var out bytes.Buffer
		lines, err := p.Run(strings.NewReader(""), &out)

		require.NoError(t, err)
		assert.Equal(t, 0, lines)
		assert.Empty(t, out.String())
	})

	t.Run("SubstitutesAcrossStream", func(t *testing.T) {
		p := newProcessor(t, map[string]string{"users.email": "fake_email"}, true)

		input := strings.Join([]string{
			`UPDATE users SET users.email = 'john@example.com';`,
			`UPDATE users SET users.email = 'john@example.com';`,
			`-- no pii here`,
		}, "\n")

		var out bytes.Buffer
		lines, err := p.Run(strings.NewReader(input), &out)
		require.NoError(t, err)
		assert.Equal(t, 3, lines)

		got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		require.Len(t, got, 3)
		assert.NotContains(t, got[0], "john@example.com")
		assert.Equal(t, got[0], got[1])
		assert.Equal(t, "-- no pii here", got[2])
	})
}
