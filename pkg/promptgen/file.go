package promptgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// SavePrompts はプロンプトを 4 スペースでインデントした JSON 配列として書き出します。
// 既存のファイルは上書きします。
func SavePrompts(path string, prompts []string) error {
	if prompts == nil {
		prompts = []string{}
	}

	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(prompts); err != nil {
		return fmt.Errorf("プロンプトのエンコードに失敗しました: %w", err)
	}
	if err := os.WriteFile(path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644); err != nil {
		return fmt.Errorf("プロンプトファイルの書き込みに失敗しました (%s): %w", path, err)
	}
	return nil
}

// LoadPrompts は JSON 配列のプロンプトファイルを読み込みます。
func LoadPrompts(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("プロンプトファイルの読み込みに失敗しました (%s): %w", path, err)
	}
	var prompts []string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("プロンプトファイルの形式が不正です (%s): %w", path, err)
	}
	return prompts, nil
}
