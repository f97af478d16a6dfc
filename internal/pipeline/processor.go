package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/scrubdb/scrubdb/internal/anonymizer"
	"github.com/scrubdb/scrubdb/internal/config"
	"github.com/scrubdb/scrubdb/internal/logger"
	"github.com/scrubdb/scrubdb/internal/scanner"
	"go.uber.org/zap"
)

// substituted pairs each detection category processed by the pipeline with
// the only strategy allowed to rewrite spans of that category.
// Credit-card-like spans are tallied by the scan pass but never substituted
// here.
var substituted = []struct {
	category scanner.Category
	strategy anonymizer.Strategy
}{
	{scanner.Email, anonymizer.FakeEmail},
	{scanner.Phone, anonymizer.FakePhone},
}

// Processor rewrites dump lines according to the configured rules. Each line
// is processed independently; the relationship cache inside the Anonymizer is
// the only state carried between lines. A Processor is not safe for
// concurrent use.
type Processor struct {
	rules    []Rule
	anon     *anonymizer.Anonymizer
	preserve bool
	logger   *logger.Logger
}

// New builds a Processor from the loaded configuration.
func New(cfg *config.Config, log *logger.Logger) *Processor {
	return NewWithAnonymizer(cfg, log, anonymizer.New())
}

// NewWithAnonymizer builds a Processor around an existing Anonymizer, for
// callers that control the fake value source or share a cache.
func NewWithAnonymizer(cfg *config.Config, log *logger.Logger, anon *anonymizer.Anonymizer) *Processor {
	p := &Processor{
		rules:    CompileRules(cfg.CustomRules, log),
		anon:     anon,
		preserve: cfg.PreserveRelationships,
		logger:   log,
	}

	p.logger.Info("Anonymization pipeline initialized",
		zap.Int("rules", len(p.rules)),
		zap.Bool("preserve_relationships", p.preserve),
	)
	return p
}

// RuleCount reports how many rules survived compilation.
func (p *Processor) RuleCount() int {
	return len(p.rules)
}

// ProcessLine rewrites one line. Rule applicability is resolved against the
// whole original line, then gated by category: an email span is substituted
// only when the resolved strategy is FakeEmail, a phone span only for
// FakePhone. A substitution replaces every occurrence of the span's text.
func (p *Processor) ProcessLine(line string) string {
	out := line
	for _, sub := range substituted {
		for _, m := range scanner.Find(line, sub.category) {
			strategy := p.resolve(line)
			if strategy != sub.strategy {
				continue
			}

			replacement := p.anon.Apply(m.Value, strategy, p.preserve)
			out = strings.ReplaceAll(out, m.Value, replacement)

			p.logger.Debug("Substituted detected value",
				zap.String("category", m.Category.String()),
				zap.String("strategy", strategy.String()),
			)
		}
	}
	return out
}

// resolve returns the strategy of the first rule whose pattern matches the
// line, or Skip when no rule applies.
func (p *Processor) resolve(line string) anonymizer.Strategy {
	for _, r := range p.rules {
		if r.Pattern.MatchString(line) {
			return r.Strategy
		}
	}
	return anonymizer.Skip
}

// Run streams r to w, rewriting line by line. Output order and line count
// match the input, every line newline-terminated. The first read or write
// failure aborts the run and is returned wrapped.
func (p *Processor) Run(r io.Reader, w io.Writer) (int, error) {
	in := scanner.NewLineReader(r)
	out := bufio.NewWriter(w)

	lines := 0
	for in.Scan() {
		if _, err := out.WriteString(p.ProcessLine(in.Text())); err != nil {
			return lines, fmt.Errorf("writing output: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return lines, fmt.Errorf("writing output: %w", err)
		}
		lines++
	}
	if err := in.Err(); err != nil {
		return lines, fmt.Errorf("reading dump: %w", err)
	}
	if err := out.Flush(); err != nil {
		return lines, fmt.Errorf("flushing output: %w", err)
	}

	p.logger.Info("Dump processed", zap.Int("lines", lines))
	return lines, nil
}
