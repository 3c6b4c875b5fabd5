package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/miruzo/iccgen"
	"github.com/miruzo/iccgen/prism/icc"
)

type options struct {
	configs      []string
	presets      []string
	output       string
	description  string
	icc_version  string
	date         string
	list_presets bool
	dry_run      bool
	cpu_profile  string
	verbose      bool
}

type job struct {
	name   string
	inputs iccgen.Inputs
}

func (o *options) jobs(created time.Time) (ans []job, err error) {
	seen := make(map[string]bool)
	add := func(name string, c iccgen.Config) error {
		// each job is written to <name>.icc
		if seen[name] {
			return fmt.Errorf("%s is given more than once, the profiles would overwrite each other", name)
		}
		seen[name] = true
		if o.description != "" {
			c.Description = o.description
		}
		if o.icc_version != "" {
			c.Version = o.icc_version
		}
		in, err := c.Inputs(created)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		ans = append(ans, job{name, in})
		return nil
	}
	for _, path := range o.configs {
		c, err := iccgen.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err = add(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), c); err != nil {
			return nil, err
		}
	}
	for _, name := range o.presets {
		if err = add(name, iccgen.Config{Preset: name}); err != nil {
			return nil, err
		}
	}
	if len(ans) == 0 {
		return nil, fmt.Errorf("nothing to build, use --preset or --config")
	}
	if o.description != "" && len(ans) > 1 {
		return nil, fmt.Errorf("--description can only be used when building a single profile")
	}
	return
}

func (o *options) output_paths(jobs []job) []string {
	ans := make([]string, len(jobs))
	if len(jobs) == 1 && o.output != "" {
		ans[0] = o.output
		return ans
	}
	dir := o.output
	if dir == "" {
		dir = "."
	}
	for i, j := range jobs {
		ans[i] = filepath.Join(dir, j.name+".icc")
	}
	return ans
}

func print_tags(cmd *cobra.Command, j job) error {
	p, err := iccgen.Build(j.inputs)
	if err != nil {
		return fmt.Errorf("%s: %w", j.name, err)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %s %q\n", j.name, p, j.inputs.Description)
	for _, tag := range p.Tags() {
		fmt.Fprintf(w, "  %v %v offset=%d size=%d\n", tag.Signature, p.TagTable.TypeSignature(tag.Signature), tag.Offset, tag.Size)
	}
	return nil
}

func (o *options) run(cmd *cobra.Command, args []string) (err error) {
	if o.verbose {
		log.SetLevel(log.DebugLevel)
	}
	if o.list_presets {
		for _, name := range iccgen.PresetNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}
	if len(args) > 0 {
		if o.output != "" {
			return fmt.Errorf("give the output either as an argument or with --output, not both")
		}
		o.output = args[0]
	}
	if o.cpu_profile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(o.cpu_profile), profile.Quiet).Stop()
	}
	created := time.Now().UTC()
	if o.date != "" {
		if created, err = time.Parse(time.RFC3339, o.date); err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}
	jobs, err := o.jobs(created)
	if err != nil {
		return err
	}
	if o.dry_run {
		for _, j := range jobs {
			if err = print_tags(cmd, j); err != nil {
				return err
			}
		}
		return nil
	}
	ins := make([]iccgen.Inputs, len(jobs))
	for i, j := range jobs {
		ins[i] = j.inputs
	}
	profiles, err := iccgen.BuildAll(ins)
	if err != nil {
		return err
	}
	if len(jobs) > 1 && o.output != "" {
		if err = os.MkdirAll(o.output, 0o755); err != nil {
			return err
		}
	}
	for i, path := range o.output_paths(jobs) {
		if err = iccgen.WriteFile(path, profiles[i]); err != nil {
			return err
		}
		log.Infof("Wrote %s (%d bytes)", path, len(profiles[i]))
	}
	return nil
}

func root_command() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "mkicc [flags] [output]",
		Short: "Create ICC display profiles",
		Long: `Create ICC matrix/TRC display profiles from a white point, three primaries
and a parametric tone curve, given as presets or YAML config files.

Default ICC version: ` + icc.DefaultVersion.String(),
		Version:       iccgen.Version.String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          o.run,
	}
	f := cmd.Flags()
	f.StringArrayVarP(&o.configs, "config", "c", nil, "YAML profile config, can be repeated")
	f.StringArrayVarP(&o.presets, "preset", "p", nil, "Preset name, can be repeated, see --list-presets")
	f.StringVarP(&o.output, "output", "o", "", "Output file, or directory when building several profiles")
	f.StringVarP(&o.description, "description", "d", "", "Override the profile description")
	f.StringVar(&o.icc_version, "icc-version", "", "ICC version of the profile, for example 4.3 or 2.1")
	f.StringVar(&o.date, "date", "", "Creation date in RFC 3339 format, defaults to now")
	f.BoolVar(&o.list_presets, "list-presets", false, "List the preset names and exit")
	f.BoolVar(&o.dry_run, "dry-run", false, "Print the tag table instead of writing files")
	f.StringVar(&o.cpu_profile, "cpu-profile", "", "Write a CPU profile to this directory")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Debug logging")
	return cmd
}

func main() {
	if err := root_command().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
