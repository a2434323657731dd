package speech

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Пути к тексту в ответе ASR, по порядку. Whisper на HF отвечает либо объектом,
// либо массивом из одного объекта.
var transcriptPaths = []string{
	"text",
	"0.text",
	"generated_text",
	"0.generated_text",
}

// ExtractTranscript — первый непустой текст по transcriptPaths, иначе "".
func ExtractTranscript(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}

	doc := gjson.ParseBytes(body)
	for _, p := range transcriptPaths {
		v := doc.Get(p)
		if v.Type != gjson.String {
			continue
		}
		if text := strings.TrimSpace(v.String()); text != "" {
			return text
		}
	}
	return ""
}
