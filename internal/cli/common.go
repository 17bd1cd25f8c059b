package cli

import "os"

// repoRoot returns the directory renamify operates against: the current
// working directory. A future revision may walk up to a VCS root, but
// spec.md scopes renamify to the invocation directory.
func repoRoot() (string, error) {
	return os.Getwd()
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
