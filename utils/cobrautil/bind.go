// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cobrautil provides cobra command helpers.
package cobrautil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var envReplacer = strings.NewReplacer(".", "_", "-", "_") //nolint:gochecknoglobals // standard replacer shared by all commands

// BindAll updates the given command flags with values from environment
// variables and the config file.
// The supported formats are: JSON, YAML, TOML, HCL, and Java properties; the
// file format is determined by the file extension, default is YAML.
// The precedence order of configuration sources is: command flags,
// environment variables, config file, default values.
func BindAll(cmd *cobra.Command, envPrefix, configFileFlagName string) error {
	v := viper.New()

	// Flags
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Environment variables
	v.SetEnvKeyReplacer(envReplacer)
	v.SetEnvPrefix(envReplacer.Replace(strings.ToUpper(envPrefix)))
	v.AutomaticEnv()

	// Config file
	if configFileFlagName != "" {
		if f := v.GetString(configFileFlagName); f != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(f)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}
	}

	// Update cobra flags with values from viper.
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}

		s := fmt.Sprintf("%v", v.Get(f.Name))
		s = strings.TrimPrefix(s, "[")
		s = strings.TrimSuffix(s, "]")
		if err := cmd.Flags().Set(f.Name, s); err != nil {
			bindErr = fmt.Errorf("set flag %s: %w", f.Name, err)
		}
	})

	return bindErr
}

// AppendEnvToUsage appends the environment variable name to the usage string
// of each flag.
func AppendEnvToUsage(cmd *cobra.Command, envPrefix string) {
	prefix := envReplacer.Replace(strings.ToUpper(envPrefix))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		name := strings.ToUpper(envReplacer.Replace(f.Name))
		f.Usage += fmt.Sprintf(" (env %s_%s)", prefix, name)
	})
}
