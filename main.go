//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package main

import "github.impcloud.net/RSP-Inventory-Suite/llrp-client/cmd"

func main() {
	cmd.Execute()
}
