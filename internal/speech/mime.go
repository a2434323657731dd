package speech

import "strings"

var audioExtensions = map[string]string{
	"audio/flac":   ".flac",
	"audio/x-flac": ".flac",
	"audio/wav":    ".wav",
	"audio/x-wav":  ".wav",
	"audio/wave":   ".wav",
	"audio/mpeg":   ".mp3",
	"audio/mp3":    ".mp3",
	"audio/ogg":    ".ogg",
	"audio/opus":   ".ogg",
	"audio/webm":   ".webm",
	"audio/mp4":    ".m4a",
}

// ExtensionFor — расширение файла для content-type; неизвестный тип → ".bin".
func ExtensionFor(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ext, ok := audioExtensions[ct]; ok {
		return ext
	}
	return ".bin"
}
