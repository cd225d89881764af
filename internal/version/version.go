/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version exposes tzerufim's build version.
package version

import "runtime/debug"

// version is set at build time via -ldflags "-X ...version.version=v1.2.3".
var version = ""

// Version returns the build version: the ldflags value when set, the
// module version from build info otherwise, or "(devel)".
func Version() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
