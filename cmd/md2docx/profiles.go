package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/text/width"

	"github.com/alnah/go-md2docx"
)

// runProfiles handles the profiles command.
func runProfiles(args []string, env *Environment) error {
	flags, err := parseProfilesFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common.config, env)
	if err != nil {
		return err
	}
	if flags.stylesDir != "" {
		cfg.Assets.BasePath = flags.stylesDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := converterOptions(cfg, zap.NewNop(), nil)
	if err != nil {
		return err
	}
	conv, err := md2docx.NewConverter(opts...)
	if err != nil {
		return err
	}
	profiles, err := conv.Profiles()
	if err != nil {
		return err
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"profiles": profiles})
	}
	printProfiles(env.Stdout, profiles, cfg.Style.Profile)
	return nil
}

// printProfiles writes one aligned row per profile. The default is starred.
func printProfiles(w io.Writer, profiles []md2docx.ProfileInfo, configured string) {
	if configured == "" {
		configured = md2docx.DefaultProfile
	}

	nameCol, slugCol := len("NAME"), len("SLUG")
	for _, p := range profiles {
		nameCol = max(nameCol, displayWidth(p.Name))
		slugCol = max(slugCol, displayWidth(p.Slug))
	}

	fmt.Fprintf(w, "  %s  %s  %s\n", pad("NAME", nameCol), pad("SLUG", slugCol), "ALIASES")
	for _, p := range profiles {
		mark := " "
		if p.Name == configured || p.Slug == configured {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s  %s  %s\n", mark, pad(p.Name, nameCol), pad(p.Slug, slugCol), strings.Join(p.Aliases, ", "))
	}
}

// displayWidth counts terminal columns: wide and fullwidth runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func pad(s string, cols int) string {
	if d := cols - displayWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
