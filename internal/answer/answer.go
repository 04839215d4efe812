// Package answer renders retrieved records into human-readable text and
// optionally phrases the answer with a text-generation model, grounded
// strictly in the retrieved records.
package answer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/AmarAbbas123/People-lookup/internal/llm"
	"github.com/AmarAbbas123/People-lookup/pkg/types"
)

// displayCap bounds how many records a multi-match summary enumerates.
const displayCap = 10

// NoMatchAnswer is returned when retrieval produced no records.
const NoMatchAnswer = "I couldn't find anything related in your dataset."

// FormatPerson renders a record field by field, omitting empty fields.
func FormatPerson(p *types.Person) string {
	name := p.Name
	if name == "" {
		name = "—"
	}
	parts := []string{"Name: " + name}
	for _, f := range []struct{ label, value string }{
		{"Description", p.Description},
		{"Category", p.Category},
		{"Blockchain", p.Blockchain},
		{"Device", p.Device},
		{"Status", p.Status},
		{"NFT", p.NFT},
		{"F2P", p.F2P},
		{"P2E", p.P2E},
	} {
		if f.value != "" {
			parts = append(parts, f.label+": "+f.value)
		}
	}
	parts = append(parts, fmt.Sprintf("P2E Score: %g", p.P2EScore))
	return strings.Join(parts, "\n")
}

// Summarize renders results into display text: a single-match narrative or
// a numbered multi-match summary capped for display.
func Summarize(results []types.ScoredPerson) string {
	if len(results) == 0 {
		return NoMatchAnswer
	}
	if len(results) == 1 {
		return FormatPerson(&results[0].Person)
	}

	n := len(results)
	if n > displayCap {
		n = displayCap
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matches:\n", len(results))
	for i := 0; i < n; i++ {
		p := &results[i].Person
		fmt.Fprintf(&b, "%d. %s", i+1, p.Name)
		if p.Category != "" {
			fmt.Fprintf(&b, " (%s)", p.Category)
		}
		fmt.Fprintf(&b, " — P2E score %g\n", p.P2EScore)
	}
	if len(results) > displayCap {
		fmt.Fprintf(&b, "…and %d more.\n", len(results)-displayCap)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildContext joins formatted records for grounding the generator.
func buildContext(results []types.ScoredPerson) string {
	blocks := make([]string, 0, len(results))
	for i := range results {
		blocks = append(blocks, fmt.Sprintf("#%d\n%s", i+1, FormatPerson(&results[i].Person)))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// Responder produces the final answer text, delegating to a generator when
// one is configured.
type Responder struct {
	generator llm.TextGenerator // nil disables generation
}

// NewResponder creates a Responder. generator may be nil.
func NewResponder(generator llm.TextGenerator) *Responder {
	return &Responder{generator: generator}
}

// Respond renders an answer for the results. When a generator is available
// it is asked for a natural-language answer grounded strictly in the
// retrieved records, with an instruction to decline if the answer is not in
// context. A generation failure degrades to the plain summary; degraded
// reports that fallback.
func (r *Responder) Respond(ctx context.Context, question string, results []types.ScoredPerson) (answer string, degraded bool) {
	summary := Summarize(results)
	if r.generator == nil || len(results) == 0 {
		return summary, false
	}

	prompt := strings.Join([]string{
		"You are a helpful assistant that ONLY uses the provided context.",
		"If the answer is not in the context, say you don't have that information.",
		"Be concise and include names and key fields when possible.",
	}, " ") + fmt.Sprintf("\n\nQuestion: %s\n\nContext:\n%s", question, buildContext(results))

	generated, err := r.generator.Complete(ctx, prompt)
	if err != nil {
		log.Printf("answer: generation failed, falling back to summary: %v", err)
		return summary, true
	}
	generated = strings.TrimSpace(generated)
	if generated == "" {
		return summary, true
	}
	return generated, false
}
