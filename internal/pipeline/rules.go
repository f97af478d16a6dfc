package pipeline

import (
	"regexp"
	"sort"

	"github.com/scrubdb/scrubdb/internal/anonymizer"
	"github.com/scrubdb/scrubdb/internal/logger"
	"go.uber.org/zap"
)

// Rule pairs a compiled line pattern with the strategy it selects. Patterns
// are word-bounded literals (typically qualified column names such as
// "users.email") matched case-sensitively against whole line content.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Strategy anonymizer.Strategy
}

// CompileRules turns the configured pattern-to-method mapping into an ordered
// rule list. The mapping carries no order of its own, so pattern keys are
// sorted; that sorted order is what first-match resolution sees. Rules with
// unrecognized methods or uncompilable patterns are dropped, never fatal.
func CompileRules(custom map[string]string, log *logger.Logger) []Rule {
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]Rule, 0, len(custom))
	for _, name := range names {
		strategy, ok := anonymizer.ParseStrategy(custom[name])
		if !ok {
			log.Debug("Dropping rule with unrecognized strategy",
				zap.String("pattern", name),
				zap.String("strategy", custom[name]),
			)
			continue
		}

		pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
		if err != nil {
			log.Debug("Dropping rule with uncompilable pattern",
				zap.String("pattern", name),
				zap.Error(err),
			)
			continue
		}

		rules = append(rules, Rule{Name: name, Pattern: pattern, Strategy: strategy})
	}
	return rules
}
