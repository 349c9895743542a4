package prompt

// levelDef is one entry of the reference-answer level catalog: a display
// label and the instruction fragment spliced into the composed prompt.
type levelDef struct {
	Label       string
	Instruction string
}

// Shared preamble emitted once above the level fragments whenever at least
// one level resolves.
const levelPreamble = "解答例は全て、指定語数に準拠させる。"

var levelCatalog = map[string]levelDef{
	"A": {
		Label: "A（原文ベース）",
		Instruction: `**解答例A（原文ベースの改善）：**
１つだけ提示する。ユーザーの原文の語彙・構文レベルを維持したまま、ミスの修正と最小限の改善のみを行う。複雑な文は追加しない。「自分の力でもここまで書けた」と実感できるレベル。`,
	},
	"B": {
		Label: "B（英検2級レベル）",
		Instruction: `**解答例B（英検2級レベル）：**
１つだけ提示する。CEFR A2～B1のレベル。平易で書きやすい論理・語彙・表現を用いた解答例。基本的な単語・表現・構文を中心に、確実に得点を確保するための、リスクを最小化した解答。`,
	},
	"C": {
		Label: "C（英検準1級レベル）",
		Instruction: `**解答例C（英検準1級レベル）：**
１つだけ提示する。CEFR B1～B2のレベル。一般的な高校3年生が書ける論理・語彙・表現を用いた解答例。標準的な自由英作文における、バランスの取れた推奨解答。`,
	},
	"D": {
		Label: "D（英検1級レベル）",
		Instruction: `**解答例D（英検1級レベル）：**
１つだけ提示する。CEFR B2～C1のレベル。難関大合格者に求められる論理・語彙・表現を用いた解答例。より高度な語彙・複雑な構文・洗練された表現を意識した解答。`,
	},
	"E": {
		Label: "E（別アプローチ版）",
		Instruction: `**解答例E（別アプローチ版）：**
１つだけ提示する。CEFR B1～B2のレベル（Cと同じ）。Cと同じレベルだが、異なるアプローチ（着眼点・賛成or反対・論理構成・例示）での設問解釈と文章構成で書いた解答例。複数の視点から設問に答える必要がある場合の参考になる代替案。`,
	},
}

// LookupLevel resolves a level id to its catalog entry. Unknown ids resolve
// to absent; callers drop them rather than failing the request.
func LookupLevel(id string) (levelDef, bool) {
	def, ok := levelCatalog[id]
	return def, ok
}
