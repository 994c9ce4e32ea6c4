// check_staged is a pre-commit hook that rejects commits spanning too many
// packages at once.
package main

import (
	"bytes"
	"os"
	"os/exec"
	"path"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// maxComponents is how many packages one commit may touch before the hook
// complains. The headless core and its front ends move together often enough
// that two is too strict.
const maxComponents = 3

// Directories whose subpackages count separately. Everything else collapses to
// its top-level directory.
var splitDirs = map[string]bool{
	"app":      true,
	"internal": true,
}

// Paths that never count toward the limit.
var ignored = map[string]bool{
	"tools": true,
	"root":  true,
}

func main() {
	cmd := exec.Command("git", "diff", "--cached", "--name-only")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		color.Yellow("warning: could not check staged files: %v", err)
		os.Exit(0)
	}

	touched := components(strings.Split(out.String(), "\n"))
	if len(touched) <= maxComponents {
		os.Exit(0)
	}

	color.Red("This commit touches %d packages:", len(touched))
	for _, c := range touched {
		color.Red(" - %s", c)
	}
	color.White("Split it up, or commit with --no-verify if this really is one change.")
	os.Exit(1)
}

// components maps staged file paths to the package they belong to.
func components(files []string) []string {
	seen := map[string]bool{}
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if c := component(f); !ignored[c] {
			seen[c] = true
		}
	}

	res := make([]string, 0, len(seen))
	for c := range seen {
		res = append(res, c)
	}
	sort.Strings(res)
	return res
}

func component(file string) string {
	parts := strings.Split(path.Clean(file), "/")
	switch {
	case len(parts) == 1:
		return "root"
	case splitDirs[parts[0]] && len(parts) > 2:
		return path.Join(parts[0], parts[1])
	default:
		return parts[0]
	}
}
