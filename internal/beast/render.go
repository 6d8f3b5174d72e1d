package beast

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aria-lang/phyloprep-go/internal/config"
	"github.com/aria-lang/phyloprep-go/internal/fileio"
	"github.com/aria-lang/phyloprep-go/internal/placeholder"
)

// Render substitutes every "{$key}" field of tmpl with the value of key.
// "{{" and "}}" produce literal braces. A field without the '$' prefix or
// naming an unset key fails with a *placeholder.MissingKeyError.
func Render(tmpl string, v config.Values) (string, error) {
	return placeholder.Expand(tmpl, func(field string) (string, bool) {
		key, ok := strings.CutPrefix(field, "$")
		if !ok || !v.Has(key) {
			return "", false
		}
		return v.String(key), true
	})
}

// ScriptOptions controls the launch scripts written next to each XML file.
type ScriptOptions struct {
	Seeds   []int
	Threads int
	// Queue is the wall clock limit in hours for cluster jobs.
	Queue int
}

// DefaultScriptOptions returns one seed, two threads and a 24 hour queue.
func DefaultScriptOptions() ScriptOptions {
	return ScriptOptions{Seeds: []int{127}, Threads: 2, Queue: 24}
}

// Scripts renders the local (nohup) and cluster (bsub) launch commands for
// the run name, one per seed. Each block starts with a comment naming the
// config file and ends with a blank line.
func Scripts(name, configFile string, opts ScriptOptions) (local, cluster string) {
	var l, c strings.Builder
	fmt.Fprintf(&l, "# %s \n", configFile)
	fmt.Fprintf(&c, "# %s \n", configFile)

	for _, seed := range opts.Seeds {
		cmd := fmt.Sprintf("java -jar -Xms2G -Xmx4G $1 -overwrite -seed %d -threads %d %s.xml", seed, opts.Threads, name)
		fmt.Fprintf(&l, "nohup %s > %s_%d.out &\n", cmd, name, seed)
		fmt.Fprintf(&c, "bsub -W%d:0 -n %d -o %s_%d.euler.out -R 'rusage[mem=4096]' %s\n", opts.Queue, opts.Threads, name, seed, cmd)
	}

	l.WriteString("\n")
	c.WriteString("\n")
	return l.String(), c.String()
}

// ScriptPaths returns the local and cluster script paths for basename.
func ScriptPaths(outDir, basename string) (local, cluster string) {
	return filepath.Join(outDir, basename+".sh"), filepath.Join(outDir, basename+".euler.sh")
}

// AppendScripts appends the launch commands of run name to the scripts of
// basename in outDir. Several runs can share one pair of scripts.
func AppendScripts(outDir, basename, name, configFile string, opts ScriptOptions) error {
	local, cluster := Scripts(name, configFile, opts)
	localPath, clusterPath := ScriptPaths(outDir, basename)

	for _, s := range []struct{ path, text string }{{localPath, local}, {clusterPath, cluster}} {
		f, err := fileio.OpenAppend(s.path)
		if err != nil {
			return err
		}
		if _, err := f.Write([]byte(s.text)); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", s.path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
