// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package version implements the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/courierproject/courier/internal/version"
	"github.com/spf13/cobra"
)

func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Version:\t%s\n", version.Version)
			fmt.Fprintf(w, "Commit:\t\t%s\n", version.Commit)
			fmt.Fprintf(w, "Go version:\t%s\n", runtime.Version())
			fmt.Fprintf(w, "OS/Arch:\t%s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
