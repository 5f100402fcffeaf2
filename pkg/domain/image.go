package domain

// Image は評価・参照に使う画像データです。
// パスやフォーマット拡張子以外のメタデータは持ちません。
type Image struct {
	Name     string
	Data     []byte
	MimeType string
}

// SynthesisRequest は単一の画像生成要求です。
type SynthesisRequest struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string
	Steps          int
	GuidanceScale  float64
	Seed           *int64 // nil でランダム
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
	UsedSeed int64 // 戻り値は情報欠落を防ぐため int64
}
