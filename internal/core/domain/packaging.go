package domain

// packagingExtensions maps packaging types whose main artifact uses a different extension.
var packagingExtensions = map[string]string{
	"bundle":         "jar",
	"maven-plugin":   "jar",
	"ejb":            "jar",
	"ejb-client":     "jar",
	"eclipse-plugin": "jar",
	"java-source":    "jar",
	"javadoc":        "jar",
	"test-jar":       "jar",
}

// ExtensionForPackaging returns the extension of the main artifact of a project
// with the given packaging. An empty packaging means "jar".
func ExtensionForPackaging(packaging string) string {
	if packaging == "" {
		return DefaultExtension
	}
	if ext, ok := packagingExtensions[packaging]; ok {
		return ext
	}
	return packaging
}
