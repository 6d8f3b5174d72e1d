package beast

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aria-lang/phyloprep-go/internal/config"
	"github.com/aria-lang/phyloprep-go/internal/fileio"
	"github.com/aria-lang/phyloprep-go/internal/glob"
)

// DefaultPattern matches run configuration files.
const DefaultPattern = "*.cfg"

// Job describes an XML generation run over a directory of configs.
// Template, OutDir and Name override the values in each config file.
type Job struct {
	InputDir   string
	Pattern    string
	Template   string
	OutDir     string
	Name       string
	Scripts    ScriptOptions
	WriteDates bool
	Logger     *zap.Logger
}

// Output describes the files generated for one config.
type Output struct {
	Config    string
	XML       string
	Dates     string
	Tips      int
	Uncertain int
}

// SplitPattern separates a directory from a config pattern such as
// "runs/*.cfg" when no input directory is given.
func SplitPattern(inputDir, pattern string) (dir, pat string) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if inputDir != "" {
		return inputDir, pattern
	}
	return filepath.Dir(pattern), filepath.Base(pattern)
}

// ConfigFiles returns the regular files in dir whose names match pattern,
// sorted by name.
func ConfigFiles(dir, pattern string) ([]string, error) {
	pat, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("config pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	files := make([]string, 0)
	for _, e := range entries {
		if e.Type().IsRegular() && pat.Match(e.Name()) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// Run generates one XML file per matching config and appends its launch
// commands to the run scripts.
func Run(ctx context.Context, job Job) ([]Output, error) {
	log := job.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if len(job.Scripts.Seeds) == 0 {
		job.Scripts = DefaultScriptOptions()
	}

	dir, pattern := SplitPattern(job.InputDir, job.Pattern)
	files, err := ConfigFiles(dir, pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Warn("no config files matched", zap.String("dir", dir), zap.String("pattern", pattern))
	}

	outputs := make([]Output, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := runConfig(filepath.Join(dir, name), name, job, log)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		outputs = append(outputs, *out)
	}
	return outputs, nil
}

func override(flag string, v config.Values, key string) string {
	if flag != "" {
		return flag
	}
	return v.String(key)
}

func runConfig(path, filename string, job Job, log *zap.Logger) (*Output, error) {
	v, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	name := v.String(KeyName)
	if name == "" {
		return nil, fmt.Errorf("config key %q is not set", KeyName)
	}
	basename := override(job.Name, v, KeyName)
	outDir := override(job.OutDir, v, KeyOutputPath)
	templatePath := override(job.Template, v, KeyTemplate)
	if templatePath == "" {
		return nil, fmt.Errorf("no template given")
	}

	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	if err := fileio.EnsureDir(outDir); err != nil {
		return nil, err
	}

	log.Info("generating", zap.String("name", name), zap.String("config", filename))

	prep, err := Prepare(v, log.With(zap.String("name", name)))
	if err != nil {
		return nil, err
	}

	xml, err := Render(string(tmpl), prep.Values)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Config:    path,
		XML:       filepath.Join(outDir, name+".xml"),
		Tips:      len(prep.Tips),
		Uncertain: len(Uncertain(prep.Tips)),
	}
	if err := os.WriteFile(out.XML, []byte(xml), 0o644); err != nil {
		return nil, fmt.Errorf("writing xml: %w", err)
	}

	if job.WriteDates {
		out.Dates = filepath.Join(outDir, name+".dates.tsv")
		if err := writeDates(out.Dates, prep.Tips); err != nil {
			return nil, err
		}
	}

	if err := AppendScripts(outDir, basename, name, filename, job.Scripts); err != nil {
		return nil, err
	}
	return out, nil
}

func writeDates(path string, tips []Tip) error {
	f, err := fileio.OpenOut(path)
	if err != nil {
		return err
	}
	if err := WriteDatesTable(f, tips); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
