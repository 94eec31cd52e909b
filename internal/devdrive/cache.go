package devdrive

import "fmt"

// CacheVar is a package-manager cache environment variable pointed at the
// Dev Drive
type CacheVar struct {
	Name  string
	Dir   string // directory created on the volume
	Value string // value written to the machine environment
}

// CacheVars returns the package-cache redirections for the volume at letter.
// Every entry's value is the cache directory itself except MAVEN_OPTS, which
// carries the directory inside a JVM property switch.
func CacheVars(letter string) []CacheVar {
	pkg := func(tool string) string {
		return fmt.Sprintf(`%s:\packages\%s`, letter, tool)
	}

	return []CacheVar{
		{Name: "npm_config_cache", Dir: pkg("npm"), Value: pkg("npm")},
		{Name: "NUGET_PACKAGES", Dir: pkg("nuget"), Value: pkg("nuget")},
		{Name: "VCPKG_DEFAULT_BINARY_CACHE", Dir: pkg("vcpkg"), Value: pkg("vcpkg")},
		{Name: "PIP_CACHE_DIR", Dir: pkg("pip"), Value: pkg("pip")},
		{Name: "CARGO_HOME", Dir: pkg("cargo"), Value: pkg("cargo")},
		{Name: "MAVEN_OPTS", Dir: pkg("maven"), Value: "-Dmaven.repo.local=" + pkg("maven")},
		{Name: "GRADLE_USER_HOME", Dir: pkg("gradle"), Value: pkg("gradle")},
	}
}
