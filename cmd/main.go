/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"os"

	"github.com/spf13/cobra"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// to ensure that exec-entrypoint and run can make use of them.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/bf2/fleetshard-operator/cmd/controller"
)

var (
	setupLog = ctrl.Log.WithName("setup")
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fleetshard-operator",
		Short:         "Coordinates Strimzi operator versions for managed Kafka instances",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "controller",
		Short: "Run the ManagedKafka controller manager",
		// Flags are parsed by the controller itself so that zap and controller-runtime
		// flags keep their usual names.
		DisableFlagParsing: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return controller.Run(args)
		},
	})
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		setupLog.Error(err, "command failed")
		os.Exit(1)
	}
}
