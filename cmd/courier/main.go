// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courierproject/courier/bind"
	"github.com/courierproject/courier/command/fetch"
	"github.com/courierproject/courier/command/version"
	"github.com/courierproject/courier/utils/cobrautil"
)

const envPrefix = "COURIER"

func rootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "courier",
		Short: "HTTP client with Digest Authentication and proxied transport",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cobrautil.BindAll(cmd, envPrefix, "config-file")
		},
	}
	bind.ConfigFile(cmd.PersistentFlags(), &configFile)

	for _, c := range []*cobra.Command{
		fetch.Command(),
		version.Command(),
	} {
		cobrautil.AppendEnvToUsage(c, envPrefix)
		cmd.AddCommand(c)
	}

	return cmd
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
