// Package ci detects the CI system herblint runs under and writes the
// job artifacts that system understands.
package ci

// System represents a supported CI system.
type System string

const (
	SystemNone    System = ""
	SystemGitHub  System = "github"
	SystemGitLab  System = "gitlab"
	SystemCircle  System = "circleci"
	SystemAzure   System = "azure"
	SystemJenkins System = "jenkins"
)

// Detect reports the CI system from environment variables looked up with
// getenv, usually os.Getenv.
func Detect(getenv func(string) string) System {
	switch {
	case getenv("GITHUB_ACTIONS") == "true":
		return SystemGitHub
	case getenv("GITLAB_CI") == "true":
		return SystemGitLab
	case getenv("CIRCLECI") == "true":
		return SystemCircle
	case getenv("TF_BUILD") == "True":
		return SystemAzure
	case getenv("JENKINS_URL") != "":
		return SystemJenkins
	default:
		return SystemNone
	}
}

// DefaultFormat is the output format used when none is requested. GitHub
// Actions gets workflow annotations; everything else gets text.
func DefaultFormat(s System) string {
	if s == SystemGitHub {
		return "github"
	}
	return "text"
}
