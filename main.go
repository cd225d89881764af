/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command tzerufim resolves DTCG design token manifests into merged,
// reference-resolved token documents, one per modifier permutation.
package main

import (
	"os"

	"bennypowers.dev/tzerufim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
