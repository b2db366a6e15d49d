package refs

import (
	"path"
	"strings"
)

const (
	// AssetPrefix is the namespace every asset reference starts with.
	AssetPrefix = "/assets/"
	// ResourcePrefix is the namespace every resource reference starts with.
	ResourcePrefix = "/resources/"
)

// ToSlash converts Windows-style separators to forward slashes.
func ToSlash(value string) string {
	return strings.ReplaceAll(value, `\`, "/")
}

// ResolvePath joins relative onto cwd using forward slash separators.
// Absolute inputs are still joined, matching a POSIX join of the two.
func ResolvePath(cwd, relative string) string {
	return path.Join(ToSlash(cwd), ToSlash(relative))
}

// AssetRef returns ref inside the asset namespace.
func AssetRef(ref string) string {
	return namespaced(AssetPrefix, ref)
}

// ResourceRef returns ref inside the resource namespace.
func ResourceRef(ref string) string {
	return namespaced(ResourcePrefix, ref)
}

func namespaced(prefix, ref string) string {
	if strings.HasPrefix(ref, prefix) {
		return ref
	}
	return prefix + ToSlash(ref)
}

// ResourceRefsInObject maps every string value and every list of strings in
// obj through ResourceRef. Values of any other type are left out of the
// result. obj itself is not modified.
func ResourceRefsInObject(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		switch v := value.(type) {
		case string:
			out[key] = ResourceRef(v)
		case []string:
			out[key] = resourceRefs(v)
		case []any:
			items := make([]string, 0, len(v))
			ok := true
			for _, item := range v {
				s, isString := item.(string)
				if !isString {
					ok = false
					break
				}
				items = append(items, s)
			}
			if ok {
				out[key] = resourceRefs(items)
			}
		}
	}
	return out
}

func resourceRefs(values []string) []string {
	mapped := make([]string, len(values))
	for i, value := range values {
		mapped[i] = ResourceRef(value)
	}
	return mapped
}
