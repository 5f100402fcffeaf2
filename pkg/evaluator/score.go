package evaluator

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ParseScore は回答文で最初に現れる単独の 1..10 を取り出します。見つからなければ ok は false です。
// それより前に無関係な数字があれば、そちらを拾います。
// 単独とは前後が単語文字でないことで、単語文字には ASCII 以外の文字や数字も含みます。
// そのため「評価は8点」からは取り出しません。
func ParseScore(answer string) (score int, ok bool) {
	prev := utf8.RuneError
	for i, r := range answer {
		if r >= '1' && r <= '9' && !isWordRune(prev) {
			rest := answer[i+1:]
			next, _ := utf8.DecodeRuneInString(rest)
			if !isWordRune(next) {
				return int(r - '0'), true
			}
			if r == '1' && next == '0' {
				if after, _ := utf8.DecodeRuneInString(rest[1:]); !isWordRune(after) {
					return 10, true
				}
			}
		}
		prev = r
	}
	return 0, false
}

// isWordRune は r が単語文字 (文字、数字、アンダースコア) かを返します。
// utf8.RuneError は文字列の端を表すため単語文字ではありません。
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Passes は平均が閾値以上なら true を返します。
func Passes(average, threshold float64) bool {
	return average >= threshold
}

// Questions は画風の適合度を問う4つの質問を返します。順序は表示にのみ影響します。
func Questions(useCase string) [4]string {
	return [4]string{
		fmt.Sprintf("On a scale from 1 to 10, how well does this image match the style of '%s'?", useCase),
		"On a scale from 1 to 10, does this image have the typical visual characteristics of the specified style?",
		fmt.Sprintf("On a scale from 1 to 10, how likely is it that this image was designed with '%s' in mind?", useCase),
		"On a scale from 1 to 10, how closely does this image's color palette match the intended style?",
	}
}
