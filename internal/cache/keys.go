package cache

import (
	"strings"
	"time"
)

const (
	GlobalKeyPrefix = "cobible"

	ContentNamespace  = "content"
	ShortcutNamespace = "shortcut"

	// ShortcutTTL bounds how long a cached shortcut lookup is served.
	ShortcutTTL = 10 * time.Minute
)

// GenerateCacheKey builds "<prefix>:<namespace>:<objectType>:<identifier>".
// Extra parts are joined by "_" and appended as one more segment.
func GenerateCacheKey(namespace, objectType, identifier string, parts ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, namespace, objectType, identifier}, ":")
	if len(parts) > 0 {
		return baseKey + ":" + strings.Join(parts, "_")
	}
	return baseKey
}

// DatasetKey is the key holding the raw text of a published dataset.
func DatasetKey(name string) string {
	return GenerateCacheKey(ContentNamespace, "dataset", name)
}

// ShortcutTitleKey is the key of a cached shortcut lookup by language and title.
// Both are kept verbatim since the lookup matches them case-sensitively.
func ShortcutTitleKey(language, title string) string {
	return GenerateCacheKey(ShortcutNamespace, "title", language, title)
}
