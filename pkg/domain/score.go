package domain

// QuestionCount は1枚の画像に対して行う質問の数です。
const QuestionCount = 4

// ScoreSet は1枚の画像に対する質問ごとのスコアです。
// 各値は 1..10、回答の解析や呼び出しに失敗した質問は 0 になります。
type ScoreSet [QuestionCount]int

// Sum はスコアの合計を返します。
func (s ScoreSet) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Average は 0 を含めた算術平均を返します。
func (s ScoreSet) Average() float64 {
	return float64(s.Sum()) / float64(len(s))
}

// Evaluation は1枚の画像の評価結果です。
type Evaluation struct {
	ImageName string
	Scores    ScoreSet
	Average   float64
	Passed    bool
}

// FilterReport はフィルタ実行全体の結果です。
type FilterReport struct {
	Considered int
	Passed     []string
	Failed     []string
}
