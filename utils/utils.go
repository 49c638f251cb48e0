package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateStudentCode generates the immutable join code assigned to a
// student at signup. Parents can supply it instead of a student id when
// requesting a link.
func GenerateStudentCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "VH-" + raw[:8]
}

// GenerateObjectKey builds a unique object-store key for an upload.
func GenerateObjectKey(prefix, filename string) string {
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = filename[idx:]
	}
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
}
