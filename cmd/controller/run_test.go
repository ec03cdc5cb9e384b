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

package controller

import (
	"testing"
	"time"
)

func Test_parseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if opts.strimziVersionLabel != "managedkafka.bf2.org/strimziVersion" {
		t.Fatalf("strimziVersionLabel = %q, want default", opts.strimziVersionLabel)
	}
	if opts.informerResync != 10*time.Minute {
		t.Fatalf("informerResync = %s, want 10m", opts.informerResync)
	}
	if !opts.secureMetrics || opts.enableHTTP2 || opts.enableLeaderElection {
		t.Fatalf("unexpected boolean defaults: %+v", opts)
	}
}

func Test_parseFlags_Overrides(t *testing.T) {
	opts, err := parseFlags([]string{
		"--leader-elect",
		"--strimzi-version-label=example.com/strimzi",
		"--informer-resync=30s",
		"--metrics-secure=false",
		"--zap-log-level=debug",
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if !opts.enableLeaderElection {
		t.Fatalf("enableLeaderElection = false, want true")
	}
	if opts.strimziVersionLabel != "example.com/strimzi" {
		t.Fatalf("strimziVersionLabel = %q", opts.strimziVersionLabel)
	}
	if opts.informerResync != 30*time.Second {
		t.Fatalf("informerResync = %s, want 30s", opts.informerResync)
	}
	if opts.secureMetrics {
		t.Fatalf("secureMetrics = true, want false")
	}
}

func Test_parseFlags_RejectsEmptyVersionLabel(t *testing.T) {
	if _, err := parseFlags([]string{"--strimzi-version-label="}); err == nil {
		t.Fatalf("parseFlags() expected error for empty version label")
	}
}

func Test_parseFlags_UnknownFlag(t *testing.T) {
	if _, err := parseFlags([]string{"--no-such-flag"}); err == nil {
		t.Fatalf("parseFlags() expected error for unknown flag")
	}
}

func Test_operatorNamespace(t *testing.T) {
	t.Setenv("POD_NAMESPACE", "")
	if got := operatorNamespace(); got != "kas-fleetshard" {
		t.Fatalf("operatorNamespace() = %q, want default", got)
	}

	t.Setenv("POD_NAMESPACE", "redhat-kas-fleetshard-operator")
	if got := operatorNamespace(); got != "redhat-kas-fleetshard-operator" {
		t.Fatalf("operatorNamespace() = %q", got)
	}
}
