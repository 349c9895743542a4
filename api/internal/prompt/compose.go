// Package prompt assembles the system instruction sent to the upstream
// model: a kind-specific skeleton, the requested level fragments, an
// optional custom instruction, a closing lessons section and a constraints
// tail with the dialect persona substituted in.
package prompt

import (
	"fmt"
	"strings"

	"essay-proxy/api/internal/task"
)

// builder accumulates sections in the order they were added and joins them
// with blank lines. Section ordering is fixed per kind; keeping it here
// instead of ad hoc concatenation makes the ordering testable on its own.
type builder struct {
	sections []string
}

func (b *builder) add(s string) {
	if s != "" {
		b.sections = append(b.sections, s)
	}
}

func (b *builder) String() string {
	return strings.Join(b.sections, "\n")
}

// Compose builds the full instruction text for one request. Pure and
// deterministic: identical inputs always produce identical output, which is
// what makes the upstream prompt cache effective. Composition never fails;
// unknown level ids are dropped and a blank custom instruction is ignored.
func Compose(kind task.Kind, levelIDs []string, customInstruction string, dialect Dialect) string {
	if kind == task.KindDiagramOCR {
		return diagramOCRSkeleton
	}

	var b builder
	b.add(fmt.Sprintf(skeletonFor(kind), roleText(dialect, kind)))

	if frags := levelFragments(levelIDs); frags != "" {
		if kind != task.KindFreeEssay {
			// The free-essay skeleton already ends with the numbered
			// reference-answer heading; the other kinds need one.
			b.add("## 参考用レベル別解答例")
		}
		b.add(levelPreamble + "\n" + frags)
	}

	if custom := strings.TrimSpace(customInstruction); custom != "" {
		b.add(customHeading(kind))
		b.add(customLead + "\n" + custom)
	}

	b.add(lessonsHeading(kind))
	b.add(lessonsSection)

	b.add(fmt.Sprintf(constraintsFor(kind), toneText(dialect)))
	return b.String()
}

func skeletonFor(kind task.Kind) string {
	switch kind {
	case task.KindTranslation:
		return translationSkeleton
	case task.KindDiagramEssay:
		return diagramEssaySkeleton
	}
	return freeEssaySkeleton
}

func constraintsFor(kind task.Kind) string {
	if kind == task.KindFreeEssay {
		return freeEssayConstraints
	}
	return commonConstraints
}

// The free essay keeps the numbered headings of its longer skeleton; the
// other grading kinds use plain second-level headings.
func customHeading(kind task.Kind) string {
	if kind == task.KindFreeEssay {
		return "### 6.5. カスタム指定"
	}
	return "## カスタム指定"
}

func lessonsHeading(kind task.Kind) string {
	if kind == task.KindFreeEssay {
		return "### 7. 次回への教訓"
	}
	return "## 次回への教訓"
}

// levelFragments renders the requested level fragments in caller order,
// defaulting to level A when none were requested. Ids that miss the catalog
// are dropped.
func levelFragments(ids []string) string {
	if len(ids) == 0 {
		ids = []string{"A"}
	}
	frags := make([]string, 0, len(ids))
	for _, id := range ids {
		if def, ok := LookupLevel(id); ok {
			frags = append(frags, def.Instruction)
		}
	}
	return strings.Join(frags, "\n")
}
