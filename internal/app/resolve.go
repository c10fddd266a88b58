package app

import (
	"path/filepath"
	"strings"

	"github.com/homeplay/homeplay/internal/config"
	"github.com/homeplay/homeplay/internal/errors"
	"github.com/homeplay/homeplay/internal/gitref"
)

// LaunchPlan is the resolved intent for a checkout: either launch an
// installed sandbox as-is, or provision a new one from CloneURL first.
type LaunchPlan struct {
	Name      string
	Provision bool
	CloneURL  string
}

// Resolve maps user input to a LaunchPlan. Priority order:
//
//  1. the name of an installed sandbox — launch it
//  2. the name of a suggested configuration — provision from its repo
//  3. a repository reference — provision under a derived name
//
// Anything else is InvalidReference; empty input is MissingRequiredOption.
func Resolve(input string, installed []string, configs []config.NamedConfig) (LaunchPlan, error) {
	if input == "" {
		return LaunchPlan{}, errors.MissingRequiredOption("sandbox name or repository reference")
	}

	for _, name := range installed {
		if name == input {
			return LaunchPlan{Name: name}, nil
		}
	}

	for _, nc := range configs {
		if nc.Name == input {
			return LaunchPlan{
				Name:      planName(nc.Name, nc.Repo),
				Provision: true,
				CloneURL:  gitref.CloneURL(nc.Repo),
			}, nil
		}
	}

	if gitref.IsRepoSource(input) {
		return LaunchPlan{
			Name:      planName("", input),
			Provision: true,
			CloneURL:  gitref.CloneURL(input),
		}, nil
	}

	return LaunchPlan{}, errors.InvalidReference(input)
}

// ResolveNamedConfig returns the provisioning plan for one suggested
// configuration, erroring when the name is unknown.
func ResolveNamedConfig(name string, configs []config.NamedConfig) (LaunchPlan, error) {
	for _, nc := range configs {
		if nc.Name == name {
			return LaunchPlan{
				Name:      planName(nc.Name, nc.Repo),
				Provision: true,
				CloneURL:  gitref.CloneURL(nc.Repo),
			}, nil
		}
	}
	return LaunchPlan{}, errors.NamedConfigNotFound(name)
}

// ResolveConfig builds the launch plan for an explicitly named suggested
// configuration. A sandbox already installed under that name launches
// directly; otherwise it is provisioned from the configured repository.
func ResolveConfig(name string, installed []string, configs []config.NamedConfig) (LaunchPlan, error) {
	plan, err := ResolveNamedConfig(name, configs)
	if err != nil {
		return LaunchPlan{}, err
	}

	for _, in := range installed {
		if in == plan.Name {
			return LaunchPlan{Name: plan.Name}, nil
		}
	}
	return plan, nil
}

// planName picks the sandbox name for a provisioning plan: an explicit
// name wins, then the reference's derived name, then the reference's base
// path segment.
func planName(explicit, ref string) string {
	if explicit != "" {
		return explicit
	}
	if derived := gitref.DeriveName(ref); derived != "" {
		return derived
	}
	base := filepath.Base(strings.TrimSuffix(strings.TrimSuffix(ref, "/"), ".git"))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}
