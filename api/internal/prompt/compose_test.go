package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-proxy/api/internal/task"
)

func TestComposeKindSkeletons(t *testing.T) {
	cases := []struct {
		kind   task.Kind
		marker string
	}{
		{task.KindFreeEssay, "# 自由英作文 添削プロンプト"},
		{task.KindTranslation, "# 和文英訳 添削プロンプト"},
		{task.KindDiagramEssay, "# 図表付き英作文 添削プロンプト"},
		{task.KindDiagramOCR, "# 画像書き起こし"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			out := Compose(tc.kind, []string{"A"}, "", DialectKansai)
			require.NotEmpty(t, out)
			assert.Contains(t, out, tc.marker)
			// Deterministic: same inputs, same bytes.
			assert.Equal(t, out, Compose(tc.kind, []string{"A"}, "", DialectKansai))
		})
	}
}

func TestComposeDefaultsToLevelA(t *testing.T) {
	empty := Compose(task.KindFreeEssay, nil, "", DialectKansai)
	explicit := Compose(task.KindFreeEssay, []string{"A"}, "", DialectKansai)
	assert.Equal(t, explicit, empty)
	assert.Contains(t, empty, "解答例A")
}

func TestComposeLevelOrderFollowsCaller(t *testing.T) {
	out := Compose(task.KindFreeEssay, []string{"C", "A"}, "", DialectKansai)
	posC := strings.Index(out, "解答例C")
	posA := strings.Index(out, "解答例A")
	require.GreaterOrEqual(t, posC, 0)
	require.GreaterOrEqual(t, posA, 0)
	assert.Less(t, posC, posA, "caller order must be preserved")
	assert.Equal(t, 1, strings.Count(out, levelPreamble), "shared preamble appears once")
}

func TestComposeDropsUnknownLevels(t *testing.T) {
	withUnknown := Compose(task.KindTranslation, []string{"B", "Z"}, "", DialectKansai)
	without := Compose(task.KindTranslation, []string{"B"}, "", DialectKansai)
	assert.Equal(t, without, withUnknown)
}

func TestComposeCustomInstruction(t *testing.T) {
	custom := "解答例は200語以内にすること"
	out := Compose(task.KindFreeEssay, nil, custom, DialectKansai)
	assert.Contains(t, out, "### 6.5. カスタム指定")
	assert.Contains(t, out, custom)

	// Custom section sits after the level fragments.
	assert.Less(t, strings.Index(out, "解答例A"), strings.Index(out, "カスタム指定"))

	// Blank custom instruction is byte-identical to omitting it.
	plain := Compose(task.KindFreeEssay, nil, "", DialectKansai)
	assert.Equal(t, plain, Compose(task.KindFreeEssay, nil, "   \n\t", DialectKansai))
	assert.NotContains(t, plain, "カスタム指定")
}

func TestComposeLessonsSectionAlwaysPresent(t *testing.T) {
	for _, kind := range []task.Kind{task.KindFreeEssay, task.KindTranslation, task.KindDiagramEssay} {
		out := Compose(kind, nil, "", DialectKansai)
		assert.Contains(t, out, "次回への教訓", string(kind))
	}
}

func TestComposeDialect(t *testing.T) {
	kansai := Compose(task.KindTranslation, nil, "", DialectKansai)
	standard := Compose(task.KindTranslation, nil, "", DialectStandard)
	assert.Contains(t, kansai, "ワイ")
	assert.NotContains(t, standard, "ワイ")
	assert.Contains(t, standard, "標準語")
	assert.NotEqual(t, kansai, standard)
}

func TestComposeOCRIgnoresPersona(t *testing.T) {
	// The OCR skeleton takes no level, custom or tone substitution.
	a := Compose(task.KindDiagramOCR, []string{"B", "C"}, "custom text", DialectStandard)
	b := Compose(task.KindDiagramOCR, nil, "", DialectKansai)
	assert.Equal(t, b, a)
	assert.NotContains(t, a, "カスタム指定")
	assert.NotContains(t, a, "解答例")
}

func TestParseDialectLenient(t *testing.T) {
	assert.Equal(t, DialectStandard, ParseDialect("standard"))
	assert.Equal(t, DialectKansai, ParseDialect("kansai"))
	assert.Equal(t, DialectKansai, ParseDialect(""))
	assert.Equal(t, DialectKansai, ParseDialect("osaka"))
}
