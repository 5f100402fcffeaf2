package oracle

import "strings"

// Collect はストリームをすべて読み切り、断片を連結した文字列を返します。
// 途中でエラーが発生した場合はそこで打ち切ってエラーを返します。
func Collect(stream TextStream) (string, error) {
	var sb strings.Builder
	for fragment, err := range stream {
		if err != nil {
			return "", err
		}
		sb.WriteString(fragment)
	}
	return sb.String(), nil
}

// Fragments は固定の断片列をストリームとして返します。
func Fragments(parts ...string) TextStream {
	return func(yield func(string, error) bool) {
		for _, p := range parts {
			if !yield(p, nil) {
				return
			}
		}
	}
}

// Failed は即座にエラーを返すストリームです。
func Failed(err error) TextStream {
	return func(yield func(string, error) bool) {
		yield("", err)
	}
}
