package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
)

// PlaceholderSize は参照画像が指定されなかった場合に使う白画像の一辺です。
const PlaceholderSize = 256

// NewPlaceholder は size x size の一様な白画像を返します。
func NewPlaceholder(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

// WritePlaceholderJPEG は白画像を一時ファイルに書き出し、そのパスを返します。
// 呼び出し側が削除の責任を持ちます。
func WritePlaceholderJPEG(dir string) (string, error) {
	f, err := os.CreateTemp(dir, "white_image-*.jpg")
	if err != nil {
		return "", err
	}
	if err := jpeg.Encode(f, NewPlaceholder(PlaceholderSize), &jpeg.Options{Quality: 95}); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// EnsurePNG は PNG 以外の画像データを PNG に変換します。PNG はそのまま返します。
func EnsurePNG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if format == "png" {
		return data, nil
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
