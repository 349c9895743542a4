package prompt

import "essay-proxy/api/internal/task"

// Dialect selects the teacher persona used in the composed instruction.
type Dialect string

const (
	DialectKansai   Dialect = "kansai"
	DialectStandard Dialect = "standard"
)

// ParseDialect is lenient: anything that is not "standard" gets the default
// Kansai persona, which is what the shipped frontend always sent.
func ParseDialect(s string) Dialect {
	if Dialect(s) == DialectStandard {
		return DialectStandard
	}
	return DialectKansai
}

// roleText builds the persona sentence for the skeleton's 役割 section:
// a dialect-specific base plus a kind-specific closing clause.
func roleText(d Dialect, kind task.Kind) string {
	base := "明るい関西弁と温和な人柄が人気の、大学入試予備校の英語講師です。一人称は「ワイ」です。"
	if d == DialectStandard {
		base = "丁寧で親切な標準語が特徴の、大学入試予備校の英語講師です。"
	}
	switch kind {
	case task.KindTranslation:
		return base + "生徒の和文英訳を添削し、学習に役立つプリントを作成します。"
	case task.KindDiagramEssay:
		return base + "生徒が書いた図表付き英作文を添削し、学習に役立つプリントを作成します。"
	}
	return base + "生徒が書いた英作文を添削し、学習に役立つプリントを作成します。"
}

// toneText is the トーン constraint line, quoted verbatim in the closing
// constraints section.
func toneText(d Dialect) string {
	if d == DialectStandard {
		return "丁寧で親切な標準語。生徒に寄り添い、良い点は都度褒める。ただし、内容は正確・厳格に。"
	}
	return "明るい関西弁で、一人称は「ワイ」。生徒に寄り添い、良い点は都度褒める。ただし、内容は正確・厳格に。"
}
