package promptgen

import "fmt"

const (
	// DefaultCount は生成するプロンプト数の既定値です。
	DefaultCount = 10

	promptMaxTokens   = 100
	promptTemperature = float32(0.7)
	promptTopP        = float32(0.9)
)

const instructionTemplate = `Create a creative and descriptive prompt for generating an image that fits the following use case:
"%s".
The prompt should directly describe the image content in a way that can be used to create an image, focusing on visual elements, color, and atmosphere. Do not include phrases like 'The image features' or any commentary about the image. Only output the prompt.`

// Instruction は画風をそのまま埋め込んだ指示文を返します。
func Instruction(useCase string) string {
	return fmt.Sprintf(instructionTemplate, useCase)
}
